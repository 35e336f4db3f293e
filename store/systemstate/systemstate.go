package systemstate

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type systemStateStore struct {
	db *db.DB
}

// New new system state store
func New(db *db.DB) core.SystemStateStore {
	return &systemStateStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.SystemState{})
		if err := tx.AutoMigrate(core.SystemState{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *systemStateStore) Find(ctx context.Context, id string) (*core.SystemState, error) {
	var state core.SystemState
	err := s.db.View().Where("id = ?", id).First(&state).Error
	if store.IsErrNotFound(err) {
		return &core.SystemState{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &state, nil
}

func (s *systemStateStore) Create(ctx context.Context, tx *db.DB, state *core.SystemState) error {
	return tx.Update().Create(state).Error
}

func (s *systemStateStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.SystemState, error) {
	var states []*core.SystemState
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&states).Error; err != nil {
		return nil, err
	}

	return states, nil
}
