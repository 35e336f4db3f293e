package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Transaction one row per on-chain transaction hash, immutable once created.
// Every event of a transaction resolves to the same row.
type Transaction struct {
	ID             string    `sql:"size:66;PRIMARY_KEY" json:"id"`
	SequenceNumber int64     `sql:"unique_index:idx_transactions_seq" json:"sequence_number"`
	BlockNumber    uint64    `sql:"index:idx_transactions_block" json:"block_number"`
	Timestamp      time.Time `json:"timestamp"`
	CreatedAt      time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TransactionStore transaction store interface. There is no update path.
type TransactionStore interface {
	// Find returns the zero transaction when the hash is unknown.
	Find(ctx context.Context, hash string) (*Transaction, error)
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	List(ctx context.Context, fromSeq int64, limit int) ([]*Transaction, error)
}
