package repository

import (
	"context"
	"fmt"

	"github.com/minhvt/finbook/internal/models"
	"github.com/shopspring/decimal"
)

// CategoryTotalRow is one per-type, per-category aggregate over a date range.
type CategoryTotalRow struct {
	Type     models.TransactionType
	Category string
	Amount   decimal.Decimal
}

// SumBalances returns the sum of all account balances for the user.
// Balances are summed across currencies without conversion, matching the
// dashboard's total.
func (r *Repository) SumBalances(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances: %w", err)
	}
	return total, nil
}

// RecentTransactions returns the user's newest transactions up to limit.
func (r *Repository) RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, type, category, amount,
		       COALESCE(description, ''), to_char(date, 'YYYY-MM-DD'), created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Type, &t.Category, &t.Amount,
			&t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// MonthTotals returns income and expense magnitudes for transactions dated
// in [from, to).
func (r *Repository) MonthTotals(ctx context.Context, userID int64, from, to string) (income, expense decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN ABS(amount) ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN ABS(amount) ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3`
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to total month: %w", err)
	}
	return income, expense, nil
}

// CategoryTotals aggregates transaction magnitudes by type and category for
// transactions dated in [from, to), largest first within each type.
func (r *Repository) CategoryTotals(ctx context.Context, userID int64, from, to string) ([]CategoryTotalRow, error) {
	query := `
		SELECT type, category, SUM(ABS(amount))
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY type, category
		ORDER BY type, SUM(ABS(amount)) DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total categories: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotalRow
	for rows.Next() {
		var row CategoryTotalRow
		if err := rows.Scan(&row.Type, &row.Category, &row.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category totals: %w", err)
	}
	return totals, nil
}
