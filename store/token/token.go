package token

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type tokenStore struct {
	db *db.DB
}

// New new token store
func New(db *db.DB) core.TokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Token{})
		if err := tx.AutoMigrate(core.Token{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.TokenChange{}).AutoMigrate(core.TokenChange{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.TokenBalance{}).AutoMigrate(core.TokenBalance{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.TokenAllowance{}).AutoMigrate(core.TokenAllowance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Find(ctx context.Context, id string) (*core.Token, error) {
	var token core.Token
	err := s.db.View().Where("id = ?", id).First(&token).Error
	if store.IsErrNotFound(err) {
		return &core.Token{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &token, nil
}

func (s *tokenStore) Create(ctx context.Context, tx *db.DB, token *core.Token) error {
	return tx.Update().Create(token).Error
}

func (s *tokenStore) Update(ctx context.Context, tx *db.DB, token *core.Token) error {
	// Save rather than Update: supply drops back to zero after a full burn.
	token.Version++
	return tx.Update().Save(token).Error
}

type tokenChangeStore struct {
	db *db.DB
}

// NewChange new token change store
func NewChange(db *db.DB) core.TokenChangeStore {
	return &tokenChangeStore{db: db}
}

func (s *tokenChangeStore) Create(ctx context.Context, tx *db.DB, change *core.TokenChange) error {
	return tx.Update().Create(change).Error
}

func (s *tokenChangeStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.TokenChange, error) {
	var changes []*core.TokenChange
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

func (s *tokenChangeStore) ListByToken(ctx context.Context, tokenID string) ([]*core.TokenChange, error) {
	var changes []*core.TokenChange
	if err := s.db.View().
		Where("token_id = ?", tokenID).
		Order("sequence_number").
		Find(&changes).Error; err != nil {
		return nil, err
	}

	return changes, nil
}

type tokenBalanceStore struct {
	db *db.DB
}

// NewBalance new token balance store
func NewBalance(db *db.DB) core.TokenBalanceStore {
	return &tokenBalanceStore{db: db}
}

func (s *tokenBalanceStore) Find(ctx context.Context, id string) (*core.TokenBalance, error) {
	var balance core.TokenBalance
	err := s.db.View().Where("id = ?", id).First(&balance).Error
	if store.IsErrNotFound(err) {
		return &core.TokenBalance{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &balance, nil
}

func (s *tokenBalanceStore) Create(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	return tx.Update().Create(balance).Error
}

func (s *tokenBalanceStore) Update(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	// Save rather than Update: balances may be spent down to zero.
	balance.Version++
	return tx.Update().Save(balance).Error
}

func (s *tokenBalanceStore) ListByOwner(ctx context.Context, owner string) ([]*core.TokenBalance, error) {
	var balances []*core.TokenBalance
	if err := s.db.View().
		Where("owner_id = ?", owner).
		Order("token_id").
		Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

type tokenAllowanceStore struct {
	db *db.DB
}

// NewAllowance new token allowance store
func NewAllowance(db *db.DB) core.TokenAllowanceStore {
	return &tokenAllowanceStore{db: db}
}

func (s *tokenAllowanceStore) Find(ctx context.Context, id string) (*core.TokenAllowance, error) {
	var allowance core.TokenAllowance
	err := s.db.View().Where("id = ?", id).First(&allowance).Error
	if store.IsErrNotFound(err) {
		return &core.TokenAllowance{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &allowance, nil
}

func (s *tokenAllowanceStore) Create(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	return tx.Update().Create(allowance).Error
}

func (s *tokenAllowanceStore) Update(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	// Save rather than Update: approvals are routinely reset to zero.
	allowance.Version++
	return tx.Update().Save(allowance).Error
}
