package transaction

import (
	"context"

	"trovescan/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.TransactionStore {
	return &transactionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Find(ctx context.Context, hash string) (*core.Transaction, error) {
	var transaction core.Transaction
	err := s.db.View().Where("id = ?", hash).First(&transaction).Error
	if store.IsErrNotFound(err) {
		return &core.Transaction{}, nil
	}

	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Create(transaction).Error
}

func (s *transactionStore) List(ctx context.Context, fromSeq int64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if err := s.db.View().
		Where("sequence_number >= ?", fromSeq).
		Order("sequence_number").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
