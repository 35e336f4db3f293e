package redemption

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type redemptionStore struct {
	db *db.DB
}

// New new redemption store
func New(db *db.DB) core.RedemptionStore {
	return &redemptionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Redemption{})
		if err := tx.AutoMigrate(core.Redemption{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *redemptionStore) Find(ctx context.Context, id string) (*core.Redemption, error) {
	var redemption core.Redemption
	err := s.db.View().Where("id = ?", id).First(&redemption).Error
	if store.IsErrNotFound(err) {
		return &core.Redemption{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

func (s *redemptionStore) Create(ctx context.Context, tx *db.DB, redemption *core.Redemption) error {
	return tx.Update().Create(redemption).Error
}

func (s *redemptionStore) Update(ctx context.Context, tx *db.DB, redemption *core.Redemption) error {
	redemption.Version++
	return tx.Update().Save(redemption).Error
}

func (s *redemptionStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Redemption, error) {
	var redemptions []*core.Redemption
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&redemptions).Error; err != nil {
		return nil, err
	}

	return redemptions, nil
}
