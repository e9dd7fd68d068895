package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhvt/finbook/internal/models"
)

const (
	recentTransactionLimit = 10
	topExpenseCategories   = 5
)

// monthRange returns the [from, to) date bounds of a YYYY-MM month.
func monthRange(month string) (from, to string, err error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("month must be YYYY-MM")
	}
	return start.Format("2006-01-02"), start.AddDate(0, 1, 0).Format("2006-01-02"), nil
}

// Summary assembles the financial overview used by the dashboard and fed to
// the AI assistant: balances, the current month's flows and recent activity.
func (s *Service) Summary(ctx context.Context, userID int64) (*models.FinancialSummary, error) {
	from, to, err := monthRange(time.Now().Format("2006-01"))
	if err != nil {
		return nil, err
	}

	total, err := s.store.SumBalances(ctx, userID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.RecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	income, expense, err := s.store.MonthTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := s.store.CategoryTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var top []models.CategoryAmount
	for _, row := range totals {
		if row.Type != models.TypeExpense {
			continue
		}
		top = append(top, models.CategoryAmount{Category: row.Category, Amount: row.Amount})
		if len(top) == topExpenseCategories {
			break
		}
	}

	return &models.FinancialSummary{
		TotalBalance:         total,
		Accounts:             accounts,
		RecentTransactions:   recent,
		MonthlyIncome:        income,
		MonthlyExpense:       expense,
		TopExpenseCategories: top,
	}, nil
}

// Report breaks one month's transactions down by category.
func (s *Service) Report(ctx context.Context, userID int64, month string) (*models.Report, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	from, to, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.CategoryTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.Report{Month: month}
	for _, row := range totals {
		entry := models.CategoryAmount{Category: row.Category, Amount: row.Amount}
		if row.Type == models.TypeIncome {
			report.Income = append(report.Income, entry)
			report.TotalIncome = report.TotalIncome.Add(row.Amount)
		} else {
			report.Expense = append(report.Expense, entry)
			report.TotalExpense = report.TotalExpense.Add(row.Amount)
		}
	}
	return report, nil
}
