package service

import (
	"context"
	"testing"

	"github.com/minhvt/finbook/internal/config"
	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/minhvt/finbook/internal/repository/inmemory"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Store = (*inmemory.Store)(nil)

func newTestService(t *testing.T) (*Service, *inmemory.Store) {
	t.Helper()
	store := inmemory.NewStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(store, logger, &config.Config{JWTSecret: "test-secret"}), store
}

func newTestAccount(t *testing.T, svc *Service, userID int64, name string) *models.Account {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), userID, AccountInput{
		Name:     name,
		Type:     models.AccountBank,
		Balance:  decimal.Zero,
		Currency: "VND",
	})
	require.NoError(t, err)
	return account
}

func balanceOf(t *testing.T, svc *Service, userID int64, accountID string) decimal.Decimal {
	t.Helper()
	account, err := svc.store.FindAccountByID(context.Background(), accountID, userID)
	require.NoError(t, err)
	return account.Balance
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateTransaction_AppliesEffectiveDelta(t *testing.T) {
	tests := []struct {
		name    string
		typ     models.TransactionType
		amount  string
		balance string
	}{
		{"income increases balance by magnitude", models.TypeIncome, "250.75", "250.75"},
		{"expense decreases balance by magnitude", models.TypeExpense, "99.99", "-99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			account := newTestAccount(t, svc, 1, "Main")

			category := "salary"
			if tt.typ == models.TypeExpense {
				category = "food"
			}
			_, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
				AccountID: account.ID,
				Type:      tt.typ,
				Category:  category,
				Amount:    dec(tt.amount),
				Date:      "2026-08-15",
			})
			require.NoError(t, err)
			assert.True(t, dec(tt.balance).Equal(balanceOf(t, svc, 1, account.ID)))
		})
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")

	valid := TransactionInput{
		AccountID: account.ID,
		Type:      models.TypeExpense,
		Category:  "food",
		Amount:    dec("10"),
		Date:      "2026-08-15",
	}

	tests := []struct {
		name   string
		mutate func(in *TransactionInput)
	}{
		{"negative amount rejected", func(in *TransactionInput) { in.Amount = dec("-10") }},
		{"zero amount rejected", func(in *TransactionInput) { in.Amount = decimal.Zero }},
		{"unknown type rejected", func(in *TransactionInput) { in.Type = "transfer" }},
		{"category from the wrong type rejected", func(in *TransactionInput) { in.Category = "salary" }},
		{"bad date rejected", func(in *TransactionInput) { in.Date = "15/08/2026" }},
		{"missing account rejected", func(in *TransactionInput) { in.AccountID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.CreateTransaction(context.Background(), 1, in)
			require.Error(t, err)
			// Nothing may be applied on a rejected input.
			assert.True(t, balanceOf(t, svc, 1, account.ID).IsZero())
		})
	}
}

func TestCreateTransaction_UnownedAccount(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")

	_, err := svc.CreateTransaction(context.Background(), 2, TransactionInput{
		AccountID: account.ID,
		Type:      models.TypeIncome,
		Category:  "salary",
		Amount:    dec("100"),
		Date:      "2026-08-15",
	})
	require.Error(t, err)
	assert.True(t, balanceOf(t, svc, 1, account.ID).IsZero())
}

func TestDeleteTransaction_IsInverseOfCreate(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")
	before := balanceOf(t, svc, 1, account.ID)

	created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID,
		Type:      models.TypeExpense,
		Category:  "shopping",
		Amount:    dec("123.45"),
		Date:      "2026-08-10",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(context.Background(), 1, created.ID))
	assert.True(t, before.Equal(balanceOf(t, svc, 1, account.ID)))
}

func TestUpdateTransaction_SameAccountAmountChange(t *testing.T) {
	tests := []struct {
		name    string
		typ     models.TransactionType
		m1, m2  string
		balance string
	}{
		{"income m1 to m2 changes balance by m2-m1", models.TypeIncome, "100", "160", "160"},
		{"expense m1 to m2 changes balance by m1-m2", models.TypeExpense, "100", "160", "-160"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			account := newTestAccount(t, svc, 1, "Main")

			category := "salary"
			if tt.typ == models.TypeExpense {
				category = "bills"
			}
			created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
				AccountID: account.ID,
				Type:      tt.typ,
				Category:  category,
				Amount:    dec(tt.m1),
				Date:      "2026-08-01",
			})
			require.NoError(t, err)

			_, err = svc.UpdateTransaction(context.Background(), 1, created.ID, TransactionInput{
				AccountID: account.ID,
				Type:      tt.typ,
				Category:  category,
				Amount:    dec(tt.m2),
				Date:      "2026-08-01",
			})
			require.NoError(t, err)
			assert.True(t, dec(tt.balance).Equal(balanceOf(t, svc, 1, account.ID)))
		})
	}
}

func TestUpdateTransaction_TypeFlipSameAmount(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Main")

	created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID,
		Type:      models.TypeIncome,
		Category:  "salary",
		Amount:    dec("200"),
		Date:      "2026-08-01",
	})
	require.NoError(t, err)

	_, err = svc.UpdateTransaction(context.Background(), 1, created.ID, TransactionInput{
		AccountID: account.ID,
		Type:      models.TypeExpense,
		Category:  "food",
		Amount:    dec("200"),
		Date:      "2026-08-01",
	})
	require.NoError(t, err)
	assert.True(t, dec("-200").Equal(balanceOf(t, svc, 1, account.ID)))
}

func TestUpdateTransaction_CrossAccountMove(t *testing.T) {
	svc, _ := newTestService(t)
	a := newTestAccount(t, svc, 1, "A")
	b := newTestAccount(t, svc, 1, "B")

	created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: a.ID,
		Type:      models.TypeExpense,
		Category:  "transport",
		Amount:    dec("75"),
		Date:      "2026-08-05",
	})
	require.NoError(t, err)
	require.True(t, dec("-75").Equal(balanceOf(t, svc, 1, a.ID)))

	_, err = svc.UpdateTransaction(context.Background(), 1, created.ID, TransactionInput{
		AccountID: b.ID,
		Type:      models.TypeExpense,
		Category:  "transport",
		Amount:    dec("75"),
		Date:      "2026-08-05",
	})
	require.NoError(t, err)

	// The source gains the reversal, the destination takes the delta, and
	// the system-wide sum is unchanged.
	assert.True(t, balanceOf(t, svc, 1, a.ID).IsZero())
	assert.True(t, dec("-75").Equal(balanceOf(t, svc, 1, b.ID)))

	total, err := svc.store.SumBalances(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, dec("-75").Equal(total))
}

func TestReconciliation_CreateMoveDeleteScenario(t *testing.T) {
	svc, _ := newTestService(t)
	a := newTestAccount(t, svc, 1, "A")
	b := newTestAccount(t, svc, 1, "B")

	created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: a.ID,
		Type:      models.TypeExpense,
		Category:  "shopping",
		Amount:    dec("50000"),
		Date:      "2026-08-20",
	})
	require.NoError(t, err)
	require.True(t, dec("-50000").Equal(balanceOf(t, svc, 1, a.ID)))

	_, err = svc.UpdateTransaction(context.Background(), 1, created.ID, TransactionInput{
		AccountID: b.ID,
		Type:      models.TypeExpense,
		Category:  "shopping",
		Amount:    dec("50000"),
		Date:      "2026-08-20",
	})
	require.NoError(t, err)
	require.True(t, balanceOf(t, svc, 1, a.ID).IsZero())
	require.True(t, dec("-50000").Equal(balanceOf(t, svc, 1, b.ID)))

	require.NoError(t, svc.DeleteTransaction(context.Background(), 1, created.ID))
	assert.True(t, balanceOf(t, svc, 1, a.ID).IsZero())
	assert.True(t, balanceOf(t, svc, 1, b.ID).IsZero())
}

func TestReconciliation_BalanceEqualsSumOfDeltas(t *testing.T) {
	svc, store := newTestService(t)
	a := newTestAccount(t, svc, 1, "A")
	b := newTestAccount(t, svc, 1, "B")

	steps := []struct {
		typ      models.TransactionType
		category string
		amount   string
	}{
		{models.TypeIncome, "salary", "1500"},
		{models.TypeExpense, "food", "320.50"},
		{models.TypeExpense, "bills", "89.99"},
		{models.TypeIncome, "other_income", "42"},
		{models.TypeExpense, "entertainment", "60"},
	}

	var ids []string
	for _, step := range steps {
		created, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
			AccountID: a.ID,
			Type:      step.typ,
			Category:  step.category,
			Amount:    dec(step.amount),
			Date:      "2026-08-01",
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
		assertInvariant(t, store, a.ID)
	}

	// Move one, edit one, delete one; the invariant must hold after each.
	_, err := svc.UpdateTransaction(context.Background(), 1, ids[1], TransactionInput{
		AccountID: b.ID, Type: models.TypeExpense, Category: "food", Amount: dec("320.50"), Date: "2026-08-01",
	})
	require.NoError(t, err)
	assertInvariant(t, store, a.ID)
	assertInvariant(t, store, b.ID)

	_, err = svc.UpdateTransaction(context.Background(), 1, ids[0], TransactionInput{
		AccountID: a.ID, Type: models.TypeIncome, Category: "salary", Amount: dec("1750"), Date: "2026-08-01",
	})
	require.NoError(t, err)
	assertInvariant(t, store, a.ID)

	require.NoError(t, svc.DeleteTransaction(context.Background(), 1, ids[4]))
	assertInvariant(t, store, a.ID)
	assertInvariant(t, store, b.ID)
}

// assertInvariant checks balance == sum of effective deltas over the
// account's transactions.
func assertInvariant(t *testing.T, store *inmemory.Store, accountID string) {
	t.Helper()
	accounts, transactions := store.Snapshot()

	sum := decimal.Zero
	for _, tr := range transactions {
		if tr.AccountID == accountID {
			sum = sum.Add(models.EffectiveDelta(tr.Type, tr.Amount))
		}
	}
	var balance decimal.Decimal
	for _, a := range accounts {
		if a.ID == accountID {
			balance = a.Balance
		}
	}
	require.Truef(t, balance.Equal(sum), "balance %s != transaction sum %s", balance, sum)
}

func TestListTransactions_Filters(t *testing.T) {
	svc, _ := newTestService(t)
	account := newTestAccount(t, svc, 1, "Wallet")

	_, err := svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID, Type: models.TypeIncome, Category: "salary", Amount: dec("900"), Date: "2026-08-01",
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(context.Background(), 1, TransactionInput{
		AccountID: account.ID, Type: models.TypeExpense, Category: "food", Amount: dec("45"),
		Description: "lunch with friends", Date: "2026-08-02",
	})
	require.NoError(t, err)

	all, err := svc.ListTransactions(context.Background(), 1, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	expenses, err := svc.ListTransactions(context.Background(), 1, repository.TransactionFilter{Type: models.TypeExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "food", expenses[0].Category)

	matched, err := svc.ListTransactions(context.Background(), 1, repository.TransactionFilter{Search: "lunch"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	_, err = svc.ListTransactions(context.Background(), 1, repository.TransactionFilter{Type: "transfer"})
	require.Error(t, err)
}
