package indexer

import (
	"trovescan/core"
)

// The three-phase change protocol. Every entity mutation brackets itself
// between beginChange/initChange and finishChange, and folds its delta into
// the system state strictly in between, so each change record references the
// snapshot pair enclosing it.

// beginChange makes sure the event's transaction row exists and allocates
// the change sequence number. Re-entrant transaction creation within one
// event is deduplicated by the session cache.
func (s *session) beginChange() (int64, error) {
	if _, err := s.getTransaction(); err != nil {
		return 0, err
	}

	return s.global.NextChangeSequence(), nil
}

// initChange stamps the record with its sequence, its transaction and the
// snapshot current before the change.
func (s *session) initChange(base *core.ChangeBase, seq int64) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	base.ID = sequenceID(seq)
	base.SequenceNumber = seq
	base.TransactionID = s.transaction.ID
	base.SystemStateBeforeID = state.ID
	return nil
}

// finishChange stamps the snapshot current after the change's effects have
// been applied. The caller persists the concrete record afterwards.
func (s *session) finishChange(base *core.ChangeBase) error {
	state, err := s.currentSystemState()
	if err != nil {
		return err
	}

	base.SystemStateAfterID = state.ID
	return nil
}
