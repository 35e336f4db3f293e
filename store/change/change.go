package change

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store/db"
)

type priceChangeStore struct {
	db *db.DB
}

// NewPrice new price change store
func NewPrice(db *db.DB) core.PriceChangeStore {
	return &priceChangeStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceChange{})
		if err := tx.AutoMigrate(core.PriceChange{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.CollSurplusChange{}).AutoMigrate(core.CollSurplusChange{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceChangeStore) Create(ctx context.Context, tx *db.DB, change *core.PriceChange) error {
	return tx.Update().Create(change).Error
}

func (s *priceChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.PriceChange, error) {
	var changes []*core.PriceChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

type collSurplusChangeStore struct {
	db *db.DB
}

// NewCollSurplus new coll surplus change store
func NewCollSurplus(db *db.DB) core.CollSurplusChangeStore {
	return &collSurplusChangeStore{db: db}
}

func (s *collSurplusChangeStore) Create(ctx context.Context, tx *db.DB, change *core.CollSurplusChange) error {
	return tx.Update().Create(change).Error
}

func (s *collSurplusChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.CollSurplusChange, error) {
	var changes []*core.CollSurplusChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *collSurplusChangeStore) ListByOwner(ctx context.Context, owner string, limit int) ([]*core.CollSurplusChange, error) {
	var changes []*core.CollSurplusChange
	if err := s.db.View().
		Where("owner_id = ?", owner).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}
