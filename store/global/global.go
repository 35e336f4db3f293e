package global

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type globalStore struct {
	db *db.DB
}

// New new global store
func New(db *db.DB) core.GlobalStore {
	return &globalStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Global{})
		if err := tx.AutoMigrate(core.Global{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *globalStore) Find(ctx context.Context) (*core.Global, error) {
	var global core.Global
	err := s.db.View().Where("id = ?", core.GlobalID).First(&global).Error
	if store.IsErrNotFound(err) {
		return &core.Global{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &global, nil
}

func (s *globalStore) Create(ctx context.Context, tx *db.DB, global *core.Global) error {
	return tx.Update().Create(global).Error
}

func (s *globalStore) Update(ctx context.Context, tx *db.DB, global *core.Global) error {
	// Save, not Update: counters and gauges legitimately reach zero, and a
	// partial update would skip zero-valued columns.
	global.Version++
	return tx.Update().Save(global).Error
}
