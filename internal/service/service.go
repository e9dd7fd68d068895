package service

import (
	"context"

	"github.com/minhvt/finbook/internal/config"
	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the service depends on. It is
// implemented by *repository.Repository; tests substitute an in-memory
// fake.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateAccount(ctx context.Context, account *models.Account) error
	ListAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	FindAccountByID(ctx context.Context, id string, userID int64) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id string, userID int64) error

	ListTransactions(ctx context.Context, userID int64, filter repository.TransactionFilter) ([]models.Transaction, error)
	FindTransactionByID(ctx context.Context, id string, userID int64) (*models.Transaction, error)
	InTx(ctx context.Context, fn func(tx repository.TxOps) error) error

	SumBalances(ctx context.Context, userID int64) (decimal.Decimal, error)
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error)
	MonthTotals(ctx context.Context, userID int64, from, to string) (income, expense decimal.Decimal, err error)
	CategoryTotals(ctx context.Context, userID int64, from, to string) ([]repository.CategoryTotalRow, error)
}

var _ Store = (*repository.Repository)(nil)

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{store: store, log: log, config: cfg}
}
