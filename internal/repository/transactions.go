package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvt/finbook/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type   models.TransactionType // empty means all
	Search string                 // matches category, description or account name
}

// ListTransactions returns the user's transactions newest first, with the
// account name and currency joined in.
func (r *Repository) ListTransactions(ctx context.Context, userID int64, filter TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.account_id, t.type, t.category, t.amount,
		       COALESCE(t.description, ''), to_char(t.date, 'YYYY-MM-DD'), t.created_at,
		       a.name, a.currency
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.user_id = $1
		  AND ($2 = '' OR t.type = $2)
		  AND ($3 = '' OR t.category ILIKE '%' || $3 || '%'
		       OR t.description ILIKE '%' || $3 || '%'
		       OR a.name ILIKE '%' || $3 || '%')
		ORDER BY t.date DESC, t.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, string(filter.Type), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Type, &t.Category, &t.Amount,
			&t.Description, &t.Date, &t.CreatedAt, &t.AccountName, &t.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// FindTransactionByID retrieves a transaction by id, scoped to the owner
func (r *Repository) FindTransactionByID(ctx context.Context, id string, userID int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	query := `
		SELECT id, user_id, account_id, type, category, amount,
		       COALESCE(description, ''), to_char(date, 'YYYY-MM-DD'), created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&t.ID, &t.UserID, &t.AccountID, &t.Type, &t.Category, &t.Amount,
			&t.Description, &t.Date, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return t, nil
}

// InsertTransaction persists a new transaction record.
func (tx *Tx) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO transactions (id, user_id, account_id, type, category, amount, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := tx.tx.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.AccountID, t.Type, t.Category, t.Amount, t.Description, t.Date).
		Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction persists changes to an existing transaction record,
// including a changed account reference.
func (tx *Tx) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, type = $2, category = $3, amount = $4,
		    description = NULLIF($5, ''), date = $6
		WHERE id = $7 AND user_id = $8`
	res, err := tx.tx.ExecContext(ctx, query,
		t.AccountID, t.Type, t.Category, t.Amount, t.Description, t.Date, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

// DeleteTransaction removes a transaction record.
func (tx *Tx) DeleteTransaction(ctx context.Context, id string, userID int64) error {
	res, err := tx.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction not found")
	}
	return nil
}

// AdjustBalance applies a signed delta to an account balance as a single
// store-side increment, so concurrent writers cannot lose updates.
func (tx *Tx) AdjustBalance(ctx context.Context, accountID string, userID int64, delta decimal.Decimal) error {
	query := `UPDATE accounts SET balance = balance + $1 WHERE id = $2 AND user_id = $3`
	res, err := tx.tx.ExecContext(ctx, query, delta, accountID, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}
