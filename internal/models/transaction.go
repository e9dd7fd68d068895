package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType enumerates the stored transaction kinds. Transfers exist
// only as a display concept and are not a stored type.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var incomeCategories = map[string]bool{
	"salary":       true,
	"investment":   true,
	"other_income": true,
}

var expenseCategories = map[string]bool{
	"food":          true,
	"transport":     true,
	"shopping":      true,
	"entertainment": true,
	"bills":         true,
	"health":        true,
	"education":     true,
	"other_expense": true,
}

// ValidCategory reports whether category belongs to the given transaction type.
func ValidCategory(typ TransactionType, category string) bool {
	if typ == TypeIncome {
		return incomeCategories[category]
	}
	return expenseCategories[category]
}

// Transaction represents a single income or expense event affecting exactly
// one account's balance. Amount stores the user-entered magnitude; the sign
// applied to the balance is derived from Type.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountID   string          `json:"account_id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"` // Format: YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at"`

	// Joined from the account row for list views.
	AccountName string `json:"account_name,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// EffectiveDelta returns the signed amount folded into an account balance
// for a transaction: +|amount| for income, -|amount| for expense. The
// magnitude is taken as an absolute value regardless of stored sign.
func EffectiveDelta(typ TransactionType, amount decimal.Decimal) decimal.Decimal {
	if typ == TypeIncome {
		return amount.Abs()
	}
	return amount.Abs().Neg()
}
