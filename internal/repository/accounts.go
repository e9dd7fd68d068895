package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/minhvt/finbook/internal/models"
)

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	query := `
		INSERT INTO accounts (id, user_id, name, type, balance, currency, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.UserID, account.Name, account.Type,
		account.Balance, account.Currency, account.Color).
		Scan(&account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ListAccounts returns all accounts owned by the user, ordered by name
func (r *Repository) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `
		SELECT id, user_id, name, type, balance, currency, color, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.Color, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account by id, scoped to the owner
func (r *Repository) FindAccountByID(ctx context.Context, id string, userID int64) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, user_id, name, type, balance, currency, color, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&account.ID, &account.UserID, &account.Name, &account.Type,
			&account.Balance, &account.Currency, &account.Color, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// UpdateAccount edits the account record itself. Writing Balance here
// bypasses reconciliation: the user-entered value replaces the running total.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, balance = $3, currency = $4, color = $5
		WHERE id = $6 AND user_id = $7`
	res, err := r.db.ExecContext(ctx, query,
		account.Name, account.Type, account.Balance, account.Currency, account.Color,
		account.ID, account.UserID)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}

// DeleteAccount deletes an account; the schema cascades the delete to the
// account's transactions.
func (r *Repository) DeleteAccount(ctx context.Context, id string, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account not found")
	}
	return nil
}
