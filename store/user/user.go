package user

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.UserStore {
	return &userStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})
		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *userStore) Find(ctx context.Context, address string) (*core.User, error) {
	var user core.User
	err := s.db.View().Where("id = ?", address).First(&user).Error
	if store.IsErrNotFound(err) {
		return &core.User{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *userStore) Create(ctx context.Context, tx *db.DB, user *core.User) error {
	return tx.Update().Create(user).Error
}

func (s *userStore) Update(ctx context.Context, tx *db.DB, user *core.User) error {
	// Save: pointer fields are cleared to the empty string on close and a
	// partial update would skip them.
	user.Version++
	return tx.Update().Save(user).Error
}
