package stake

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type stakeStore struct {
	db *db.DB
}

// New new stake store
func New(db *db.DB) core.StakeStore {
	return &stakeStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Stake{})
		if err := tx.AutoMigrate(core.Stake{}).Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.StakeChange{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *stakeStore) Find(ctx context.Context, id string) (*core.Stake, error) {
	var stake core.Stake
	err := s.db.View().Where("id = ?", id).First(&stake).Error
	if store.IsErrNotFound(err) {
		return &core.Stake{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &stake, nil
}

func (s *stakeStore) Create(ctx context.Context, tx *db.DB, stake *core.Stake) error {
	return tx.Update().Create(stake).Error
}

func (s *stakeStore) Update(ctx context.Context, tx *db.DB, stake *core.Stake) error {
	// Save: a removed stake is zero.
	stake.Version++
	return tx.Update().Save(stake).Error
}

type stakeChangeStore struct {
	db *db.DB
}

// NewChange new stake change store
func NewChange(db *db.DB) core.StakeChangeStore {
	return &stakeChangeStore{db: db}
}

func (s *stakeChangeStore) Create(ctx context.Context, tx *db.DB, change *core.StakeChange) error {
	return tx.Update().Create(change).Error
}

func (s *stakeChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.StakeChange, error) {
	var changes []*core.StakeChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *stakeChangeStore) ListByStake(ctx context.Context, stakeID string) ([]*core.StakeChange, error) {
	var changes []*core.StakeChange
	if err := s.db.View().
		Where("stake_id = ?", stakeID).
		Order("sequence_number").
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}
