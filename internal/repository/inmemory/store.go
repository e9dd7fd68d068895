// Package inmemory provides a map-backed implementation of the service's
// store, used by tests in place of Postgres.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/shopspring/decimal"
)

// Store keeps all state in maps guarded by one mutex.
type Store struct {
	mu           sync.Mutex
	users        map[int64]models.User
	accounts     map[string]models.Account
	transactions map[string]models.Transaction
	nextUserID   int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]models.User),
		accounts:     make(map[string]models.Account),
		transactions: make(map[string]models.Transaction),
	}
}

// Snapshot returns copies of all accounts and transactions, for asserting
// invariants in tests.
func (s *Store) Snapshot() ([]models.Account, []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	transactions := make([]models.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		transactions = append(transactions, t)
	}
	return accounts, transactions
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("failed to create user: duplicate email")
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (s *Store) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CreatedAt = time.Now()
	s.accounts[account.ID] = *account
	return nil
}

func (s *Store) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var accounts []models.Account
	for _, a := range s.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

func (s *Store) FindAccountByID(_ context.Context, id string, userID int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, fmt.Errorf("account not found")
	}
	found := a
	return &found, nil
}

func (s *Store) UpdateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.accounts[account.ID]
	if !ok || existing.UserID != account.UserID {
		return fmt.Errorf("account not found")
	}
	account.CreatedAt = existing.CreatedAt
	s.accounts[account.ID] = *account
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, id string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return fmt.Errorf("account not found")
	}
	delete(s.accounts, id)
	// schema-level cascade
	for tid, t := range s.transactions {
		if t.AccountID == id {
			delete(s.transactions, tid)
		}
	}
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID int64, filter repository.TransactionFilter) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var transactions []models.Transaction
	for _, t := range s.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			name := strings.ToLower(s.accounts[t.AccountID].Name)
			if !strings.Contains(strings.ToLower(t.Category), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) &&
				!strings.Contains(name, q) {
				continue
			}
		}
		if a, ok := s.accounts[t.AccountID]; ok {
			t.AccountName = a.Name
			t.Currency = a.Currency
		}
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Date > transactions[j].Date })
	return transactions, nil
}

func (s *Store) FindTransactionByID(_ context.Context, id string, userID int64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("transaction not found")
	}
	found := t
	return &found, nil
}

func (s *Store) InTx(_ context.Context, fn func(tx repository.TxOps) error) error {
	return fn(&memTx{store: s})
}

func (s *Store) SumBalances(_ context.Context, userID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, a := range s.accounts {
		if a.UserID == userID {
			total = total.Add(a.Balance)
		}
	}
	return total, nil
}

func (s *Store) RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	transactions, err := s.ListTransactions(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (s *Store) MonthTotals(_ context.Context, userID int64, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range s.transactions {
		if t.UserID != userID || t.Date < from || t.Date >= to {
			continue
		}
		if t.Type == models.TypeIncome {
			income = income.Add(t.Amount.Abs())
		} else {
			expense = expense.Add(t.Amount.Abs())
		}
	}
	return income, expense, nil
}

func (s *Store) CategoryTotals(_ context.Context, userID int64, from, to string) ([]repository.CategoryTotalRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	type key struct {
		typ      models.TransactionType
		category string
	}
	sums := make(map[key]decimal.Decimal)
	for _, t := range s.transactions {
		if t.UserID != userID || t.Date < from || t.Date >= to {
			continue
		}
		k := key{t.Type, t.Category}
		sums[k] = sums[k].Add(t.Amount.Abs())
	}
	var rows []repository.CategoryTotalRow
	for k, sum := range sums {
		rows = append(rows, repository.CategoryTotalRow{Type: k.typ, Category: k.category, Amount: sum})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows, nil
}

// memTx mutates the store directly; callers only reach it through InTx.
type memTx struct {
	store *Store
}

func (tx *memTx) InsertTransaction(_ context.Context, t *models.Transaction) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	tx.store.transactions[t.ID] = *t
	return nil
}

func (tx *memTx) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	existing, ok := tx.store.transactions[t.ID]
	if !ok || existing.UserID != t.UserID {
		return fmt.Errorf("transaction not found")
	}
	tx.store.transactions[t.ID] = *t
	return nil
}

func (tx *memTx) DeleteTransaction(_ context.Context, id string, userID int64) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	t, ok := tx.store.transactions[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("transaction not found")
	}
	delete(tx.store.transactions, id)
	return nil
}

func (tx *memTx) AdjustBalance(_ context.Context, accountID string, userID int64, delta decimal.Decimal) error {
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	a, ok := tx.store.accounts[accountID]
	if !ok || a.UserID != userID {
		return fmt.Errorf("account not found")
	}
	a.Balance = a.Balance.Add(delta)
	tx.store.accounts[accountID] = a
	return nil
}
