package service

import (
	"context"
	"fmt"
	"time"

	"github.com/minhvt/finbook/internal/models"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/shopspring/decimal"
)

// TransactionInput carries the user-editable transaction fields.
type TransactionInput struct {
	AccountID   string                 `json:"account_id"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Date        string                 `json:"date"`
}

func (in *TransactionInput) validate() error {
	if in.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("unknown transaction type: %s", in.Type)
	}
	if !models.ValidCategory(in.Type, in.Category) {
		return fmt.Errorf("unknown %s category: %s", in.Type, in.Category)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

// CreateTransaction inserts a transaction and folds its effective delta into
// the account balance. Both writes commit together.
func (s *Service) CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.FindAccountByID(ctx, in.AccountID, userID); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		UserID:      userID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
	}

	err := s.store.InTx(ctx, func(tx repository.TxOps) error {
		if err := tx.InsertTransaction(ctx, t); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, t.AccountID, userID, models.EffectiveDelta(t.Type, t.Amount))
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transaction created for user %d: %s %s on account %s", userID, t.Type, t.Amount, t.AccountID)
	return t, nil
}

// UpdateTransaction persists changes to a transaction and keeps the affected
// balances consistent. A same-account edit is one net adjustment; moving the
// transaction to a different account reverses the old delta on the source
// and applies the new delta on the destination.
func (s *Service) UpdateTransaction(ctx context.Context, userID int64, id string, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	old, err := s.store.FindTransactionByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.AccountID != old.AccountID {
		if _, err := s.store.FindAccountByID(ctx, in.AccountID, userID); err != nil {
			return nil, err
		}
	}

	oldDelta := models.EffectiveDelta(old.Type, old.Amount)
	newDelta := models.EffectiveDelta(in.Type, in.Amount)

	updated := &models.Transaction{
		ID:          old.ID,
		UserID:      userID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		CreatedAt:   old.CreatedAt,
	}

	err = s.store.InTx(ctx, func(tx repository.TxOps) error {
		if err := tx.UpdateTransaction(ctx, updated); err != nil {
			return err
		}
		if updated.AccountID == old.AccountID {
			return tx.AdjustBalance(ctx, old.AccountID, userID, newDelta.Sub(oldDelta))
		}
		if err := tx.AdjustBalance(ctx, old.AccountID, userID, oldDelta.Neg()); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, updated.AccountID, userID, newDelta)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Transaction updated for user %d: %s", userID, updated.ID)
	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its effective delta,
// the exact inverse of creating it.
func (s *Service) DeleteTransaction(ctx context.Context, userID int64, id string) error {
	old, err := s.store.FindTransactionByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = s.store.InTx(ctx, func(tx repository.TxOps) error {
		if err := tx.DeleteTransaction(ctx, id, userID); err != nil {
			return err
		}
		return tx.AdjustBalance(ctx, old.AccountID, userID, models.EffectiveDelta(old.Type, old.Amount).Neg())
	})
	if err != nil {
		return err
	}

	s.log.Infof("Transaction deleted for user %d: %s", userID, id)
	return nil
}

// ListTransactions returns the user's transactions, optionally filtered by
// type and a free-text search.
func (s *Service) ListTransactions(ctx context.Context, userID int64, filter repository.TransactionFilter) ([]models.Transaction, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type: %s", filter.Type)
	}
	return s.store.ListTransactions(ctx, userID, filter)
}
