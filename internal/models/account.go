package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the supported kinds of accounts.
type AccountType string

const (
	AccountBank       AccountType = "bank"
	AccountCash       AccountType = "cash"
	AccountCreditCard AccountType = "credit_card"
	AccountEWallet    AccountType = "e_wallet"
	AccountInvestment AccountType = "investment"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountBank, AccountCash, AccountCreditCard, AccountEWallet, AccountInvestment:
		return true
	}
	return false
}

// Account represents a named store of money with a running balance.
// Balance is kept equal to the sum of effective deltas of the account's
// transactions; it is mutated only by the reconciler or by an explicit
// account edit.
type Account struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Color     string          `json:"color"`
	CreatedAt time.Time       `json:"created_at"`
}
