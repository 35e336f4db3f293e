package liquidation

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type liquidationStore struct {
	db *db.DB
}

// New new liquidation store
func New(db *db.DB) core.LiquidationStore {
	return &liquidationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Liquidation{})
		if err := tx.AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *liquidationStore) Find(ctx context.Context, id string) (*core.Liquidation, error) {
	var liquidation core.Liquidation
	err := s.db.View().Where("id = ?", id).First(&liquidation).Error
	if store.IsErrNotFound(err) {
		return &core.Liquidation{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &liquidation, nil
}

func (s *liquidationStore) Create(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	return tx.Update().Create(liquidation).Error
}

func (s *liquidationStore) Update(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	liquidation.Version++
	return tx.Update().Save(liquidation).Error
}

func (s *liquidationStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&liquidations).Error; err != nil {
		return nil, err
	}

	return liquidations, nil
}
