package trove

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type troveStore struct {
	db *db.DB
}

// New new trove store
func New(db *db.DB) core.TroveStore {
	return &troveStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Trove{})
		if err := tx.AutoMigrate(core.Trove{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *troveStore) Find(ctx context.Context, id string) (*core.Trove, error) {
	var trove core.Trove
	err := s.db.View().Where("id = ?", id).First(&trove).Error
	if store.IsErrNotFound(err) {
		return &core.Trove{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &trove, nil
}

func (s *troveStore) ListByOwner(ctx context.Context, owner string) ([]*core.Trove, error) {
	var troves []*core.Trove
	if err := s.db.View().
		Where("owner_id = ?", owner).
		Order("id").
		Find(&troves).Error; err != nil {
		return nil, err
	}

	return troves, nil
}

func (s *troveStore) Create(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	return tx.Update().Create(trove).Error
}

func (s *troveStore) Update(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	// Save: a closed trove has zero collateral and debt.
	trove.Version++
	return tx.Update().Save(trove).Error
}
