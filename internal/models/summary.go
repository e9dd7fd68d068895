package models

import "github.com/shopspring/decimal"

// CategoryAmount is a per-category total used in reports and the summary.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// FinancialSummary is the aggregated view fed to the dashboard and to the
// AI assistant: balances, the current month's flows and the most recent
// transactions.
type FinancialSummary struct {
	TotalBalance         decimal.Decimal  `json:"totalBalance"`
	Accounts             []Account        `json:"accounts"`
	RecentTransactions   []Transaction    `json:"recentTransactions"`
	MonthlyIncome        decimal.Decimal  `json:"monthlyIncome"`
	MonthlyExpense       decimal.Decimal  `json:"monthlyExpense"`
	TopExpenseCategories []CategoryAmount `json:"topExpenseCategories"`
}

// Report breaks a month's transactions down by category.
type Report struct {
	Month        string           `json:"month"` // Format: YYYY-MM
	Income       []CategoryAmount `json:"income"`
	Expense      []CategoryAmount `json:"expense"`
	TotalIncome  decimal.Decimal  `json:"total_income"`
	TotalExpense decimal.Decimal  `json:"total_expense"`
}
