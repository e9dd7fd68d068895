package service

import (
	"context"
	"fmt"

	"github.com/minhvt/finbook/internal/models"
	"github.com/shopspring/decimal"
)

// AccountInput carries the user-editable account fields.
type AccountInput struct {
	Name     string             `json:"name"`
	Type     models.AccountType `json:"type"`
	Balance  decimal.Decimal    `json:"balance"`
	Currency string             `json:"currency"`
	Color    string             `json:"color"`
}

func (in *AccountInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("unknown account type: %s", in.Type)
	}
	if len(in.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter ISO code")
	}
	return nil
}

// CreateAccount creates a new account for the authenticated user
func (s *Service) CreateAccount(ctx context.Context, userID int64, in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		Balance:  in.Balance,
		Currency: in.Currency,
		Color:    in.Color,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account created for user %d: %s (%s)", userID, account.Name, account.Currency)
	return account, nil
}

// ListAccounts returns all accounts owned by the user
func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	return s.store.ListAccounts(ctx, userID)
}

// UpdateAccount edits the account record, including a direct balance reset.
// A balance written here bypasses reconciliation: the stored running total
// is replaced with the user-entered value.
func (s *Service) UpdateAccount(ctx context.Context, userID int64, id string, in AccountInput) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	account, err := s.store.FindAccountByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	account.Name = in.Name
	account.Type = in.Type
	account.Balance = in.Balance
	account.Currency = in.Currency
	account.Color = in.Color

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account updated for user %d: %s", userID, account.ID)
	return account, nil
}

// DeleteAccount removes an account; its transactions go with it via the
// schema-level cascade.
func (s *Service) DeleteAccount(ctx context.Context, userID int64, id string) error {
	if err := s.store.DeleteAccount(ctx, id, userID); err != nil {
		return err
	}
	s.log.Infof("Account deleted for user %d: %s", userID, id)
	return nil
}
