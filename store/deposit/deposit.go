package deposit

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type depositStore struct {
	db *db.DB
}

// New new stability deposit store
func New(db *db.DB) core.StabilityDepositStore {
	return &depositStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.StabilityDeposit{})
		if err := tx.AutoMigrate(core.StabilityDeposit{}).Error; err != nil {
			return err
		}

		if err := tx.AutoMigrate(core.StabilityDepositChange{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *depositStore) Find(ctx context.Context, id string) (*core.StabilityDeposit, error) {
	var deposit core.StabilityDeposit
	err := s.db.View().Where("id = ?", id).First(&deposit).Error
	if store.IsErrNotFound(err) {
		return &core.StabilityDeposit{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &deposit, nil
}

func (s *depositStore) ListByOwner(ctx context.Context, owner string) ([]*core.StabilityDeposit, error) {
	var deposits []*core.StabilityDeposit
	if err := s.db.View().
		Where("owner_id = ?", owner).
		Order("id").
		Find(&deposits).Error; err != nil {
		return nil, err
	}

	return deposits, nil
}

func (s *depositStore) Create(ctx context.Context, tx *db.DB, deposit *core.StabilityDeposit) error {
	return tx.Update().Create(deposit).Error
}

func (s *depositStore) Update(ctx context.Context, tx *db.DB, deposit *core.StabilityDeposit) error {
	// Save: a fully withdrawn deposit is zero.
	deposit.Version++
	return tx.Update().Save(deposit).Error
}

type depositChangeStore struct {
	db *db.DB
}

// NewChange new stability deposit change store
func NewChange(db *db.DB) core.StabilityDepositChangeStore {
	return &depositChangeStore{db: db}
}

func (s *depositChangeStore) Create(ctx context.Context, tx *db.DB, change *core.StabilityDepositChange) error {
	return tx.Update().Create(change).Error
}

func (s *depositChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.StabilityDepositChange, error) {
	var changes []*core.StabilityDepositChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *depositChangeStore) ListByDeposit(ctx context.Context, depositID string) ([]*core.StabilityDepositChange, error) {
	var changes []*core.StabilityDepositChange
	if err := s.db.View().
		Where("stability_deposit_id = ?", depositID).
		Order("sequence_number").
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}
