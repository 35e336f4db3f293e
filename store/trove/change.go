package trove

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store/db"
)

type troveChangeStore struct {
	db *db.DB
}

// NewChange new trove change store
func NewChange(db *db.DB) core.TroveChangeStore {
	return &troveChangeStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.TroveChange{})
		if err := tx.AutoMigrate(core.TroveChange{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *troveChangeStore) Create(ctx context.Context, tx *db.DB, change *core.TroveChange) error {
	return tx.Update().Create(change).Error
}

func (s *troveChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.TroveChange, error) {
	var changes []*core.TroveChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *troveChangeStore) ListByTrove(ctx context.Context, troveID string) ([]*core.TroveChange, error) {
	var changes []*core.TroveChange
	if err := s.db.View().
		Where("trove_id = ?", troveID).
		Order("sequence_number").
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}
