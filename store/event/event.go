package event

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new chain event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ChainEvent{})
		if err := tx.AutoMigrate(core.ChainEvent{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, event *core.ChainEvent) error {
	return s.db.Update().Where(
		"tx_hash = ? AND log_index = ?",
		event.TxHash,
		event.LogIndex,
	).FirstOrCreate(event).Error
}

func (s *eventStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.ChainEvent, error) {
	var events []*core.ChainEvent
	if err := s.db.View().
		Where("id > ?", fromID).
		Order("id").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *eventStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.ChainEvent{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
