package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceDrift is an account whose stored balance no longer equals the sum
// of its transactions' effective deltas.
type BalanceDrift struct {
	AccountID   string
	AccountName string
	UserID      int64
	Currency    string
	Stored      decimal.Decimal
	Computed    decimal.Decimal
}

// FindBalanceDrift compares every stored balance against the aggregate of
// its transactions and returns the accounts that disagree. Accounts whose
// balance was explicitly reset by the user will show up here until their
// transactions catch up; that is intentional.
func (r *Repository) FindBalanceDrift(ctx context.Context) ([]BalanceDrift, error) {
	query := `
		SELECT a.id, a.name, a.user_id, a.currency, a.balance,
		       COALESCE(SUM(CASE WHEN t.type = 'income' THEN ABS(t.amount) ELSE -ABS(t.amount) END), 0) AS computed
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		GROUP BY a.id, a.name, a.user_id, a.currency, a.balance
		HAVING a.balance <> COALESCE(SUM(CASE WHEN t.type = 'income' THEN ABS(t.amount) ELSE -ABS(t.amount) END), 0)`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance drift: %w", err)
	}
	defer rows.Close()

	var drifts []BalanceDrift
	for rows.Next() {
		var d BalanceDrift
		if err := rows.Scan(&d.AccountID, &d.AccountName, &d.UserID, &d.Currency, &d.Stored, &d.Computed); err != nil {
			return nil, fmt.Errorf("failed to scan balance drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read balance drift: %w", err)
	}
	return drifts, nil
}
