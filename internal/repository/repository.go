package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minhvt/finbook/internal/models"
	"github.com/shopspring/decimal"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TxOps are the mutation operations that must run inside a single database
// transaction so a transaction record and its balance adjustments commit or
// roll back together.
type TxOps interface {
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string, userID int64) error
	AdjustBalance(ctx context.Context, accountID string, userID int64, delta decimal.Decimal) error
}

// Tx implements TxOps over one open database transaction.
type Tx struct {
	tx *sql.Tx
}

// InTx runs fn inside one database transaction, rolling back on error.
func (r *Repository) InTx(ctx context.Context, fn func(tx TxOps) error) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Tx{tx: dbTx}); err != nil {
		_ = dbTx.Rollback()
		return err
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
