package service

import (
	"context"
	"testing"

	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		in   AccountInput
	}{
		{"missing name", AccountInput{Type: models.AccountBank, Currency: "VND"}},
		{"unknown type", AccountInput{Name: "X", Type: "crypto", Currency: "VND"}},
		{"bad currency", AccountInput{Name: "X", Type: models.AccountCash, Currency: "DONG"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), 1, tt.in)
			require.Error(t, err)
		})
	}
}

func TestUpdateAccount_BalanceResetBypassesReconciliation(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")

	_, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID, Type: models.TypeExpense, Category: "food", Amount: dec("100"), Date: "2026-08-01",
	})
	require.NoError(t, err)
	require.True(t, dec("-100").Equal(balanceOf(t, svc, 1, account.ID)))

	// An explicit account edit replaces the running total outright.
	updated, err := svc.UpdateAccount(context.Background(), 1, account.ID, AccountInput{
		Name:     "Main",
		Type:     models.AccountBank,
		Balance:  dec("5000"),
		Currency: "VND",
	})
	require.NoError(t, err)
	assert.True(t, dec("5000").Equal(updated.Balance))
	assert.True(t, dec("5000").Equal(balanceOf(t, svc, 1, account.ID)))
}

func TestDeleteAccount_CascadesTransactions(t *testing.T) {
	svc, store := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")

	_, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID, Type: models.TypeIncome, Category: "salary", Amount: dec("10"), Date: "2026-08-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), 1, account.ID))

	transactions, err := store.ListTransactions(context.Background(), 1, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestAccounts_ScopedToOwner(t *testing.T) {
	svc, _ := newTestService(t)
	mine := newTestAccount(t, svc, 1, "Mine")
	_ = newTestAccount(t, svc, 2, "Theirs")

	accounts, err := svc.ListAccounts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, mine.ID, accounts[0].ID)

	_, err = svc.UpdateAccount(context.Background(), 2, mine.ID, AccountInput{
		Name: "Hijack", Type: models.AccountBank, Balance: decimal.Zero, Currency: "VND",
	})
	require.Error(t, err)

	require.Error(t, svc.DeleteAccount(context.Background(), 2, mine.ID))
}
