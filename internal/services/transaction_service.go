package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"teamspace/internal/aggregate"
	apperrors "teamspace/internal/errors"
	"teamspace/internal/events"
	"teamspace/internal/ids"
	"teamspace/internal/imagesearch"
	"teamspace/internal/locator"
	"teamspace/internal/models"
	"teamspace/internal/store"
)

// transactionService handles transaction business logic. Every write moves
// the owning category's amountUsed in the same update as the list change.
type transactionService struct {
	base
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(d Deps) TransactionServicer {
	return &transactionService{base: newBase(d)}
}

// CreateTransaction appends a transaction dated today and adds its amount to
// the category aggregate.
func (s *transactionService) CreateTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction name is required")
	}

	ts, err := s.fetch(ctx, in.TeamSpaceID)
	if err != nil {
		return nil, err
	}
	catIdx := locator.CategoryIndex(ts, in.SpendingCategoryID)
	if catIdx == locator.NotFound {
		return nil, apperrors.ErrCategoryNotFound
	}

	image, err := s.Images.Pick(ctx, in.Name, imagesearch.Squarish)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImageSearch, err)
	}

	categoryName := in.SpendingCategoryName
	if categoryName == "" {
		categoryName = ts.SpendingCategories[catIdx].SpendingCategoryName
	}
	tx := models.Transaction{
		TransactionID:        ids.NewTransactionID(),
		TransactionName:      in.Name,
		TransactionAmount:    in.Amount,
		TransactionDate:      s.today(),
		UserID:               in.UserID,
		Username:             in.Username,
		SpendingCategoryID:   in.SpendingCategoryID,
		SpendingCategoryName: categoryName,
		Styles:               models.ImageStyles(image),
	}

	version, err := s.mutate(ctx, "createTransaction", in.TeamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		idx := locator.CategoryIndex(ts, in.SpendingCategoryID)
		if idx == locator.NotFound {
			return nil, apperrors.ErrCategoryNotFound
		}
		return []store.Op{
			store.Append(store.Path(models.FieldSpendingCategories, idx, models.FieldTransactions), tx),
			aggregate.Added(idx, tx.TransactionAmount),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.TransactionCreated,
		TeamSpaceID:  in.TeamSpaceID,
		ResourceType: ResourceTransaction,
		ResourceID:   tx.TransactionID,
		Version:      version,
		Changes:      map[string]any{"transactionName": tx.TransactionName, "transactionAmount": tx.TransactionAmount},
	})
	return &tx, nil
}

// EditTransaction updates name, amount and image in place and moves the
// aggregate by the difference from the stored amount.
func (s *transactionService) EditTransaction(ctx context.Context, teamSpaceID, transactionID, oldName, newName string, newAmount decimal.Decimal, oldImage string) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction name is required")
	}

	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return err
	}
	if !locator.TransactionIndex(ts, transactionID).Found() {
		return apperrors.ErrTransactionNotFound
	}

	image := oldImage
	if newName != oldName {
		if image, err = s.Images.Pick(ctx, newName, imagesearch.Squarish); err != nil {
			return apperrors.Wrap(apperrors.ErrImageSearch, err)
		}
	}

	var delta decimal.Decimal
	version, err := s.mutate(ctx, "editTransaction", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		pos := locator.TransactionIndex(ts, transactionID)
		if !pos.Found() {
			return nil, apperrors.ErrTransactionNotFound
		}
		cur := ts.SpendingCategories[pos.Category].Transactions[pos.Transaction]
		delta = newAmount.Sub(cur.TransactionAmount)

		txPath := func(field string) string {
			return store.Path(models.FieldSpendingCategories, pos.Category, models.FieldTransactions, pos.Transaction, field)
		}
		return []store.Op{
			store.Set(txPath(models.FieldTransactionName), newName),
			store.Set(txPath(models.FieldTransactionAmount), newAmount),
			store.Set(txPath(models.FieldStyles), withImage(cur.Styles, image)),
			aggregate.Edited(pos.Category, cur.TransactionAmount, newAmount),
		}, nil
	})
	if err != nil {
		return err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.TransactionEdited,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceTransaction,
		ResourceID:   transactionID,
		Version:      version,
		Changes:      map[string]any{"transactionName": newName, "transactionAmount": newAmount, "delta": delta},
	})
	return nil
}

// DeleteTransaction removes the transaction, subtracts its amount from the
// category aggregate and returns it.
func (s *transactionService) DeleteTransaction(ctx context.Context, teamSpaceID, transactionID string) (*models.Transaction, error) {
	var removed models.Transaction
	version, err := s.mutate(ctx, "deleteTransaction", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		pos := locator.TransactionIndex(ts, transactionID)
		if !pos.Found() {
			return nil, apperrors.ErrTransactionNotFound
		}
		removed = ts.SpendingCategories[pos.Category].Transactions[pos.Transaction]
		return []store.Op{
			store.Remove(store.Path(models.FieldSpendingCategories, pos.Category, models.FieldTransactions, pos.Transaction)),
			aggregate.Removed(pos.Category, removed.TransactionAmount),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.TransactionDeleted,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceTransaction,
		ResourceID:   transactionID,
		Version:      version,
		Changes:      map[string]any{"transactionAmount": removed.TransactionAmount},
	})
	return &removed, nil
}

// GetTransactionStyles returns the transaction's presentation metadata.
func (s *transactionService) GetTransactionStyles(ctx context.Context, teamSpaceID, transactionID string) (models.Styles, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	pos := locator.TransactionIndex(ts, transactionID)
	if !pos.Found() {
		return nil, apperrors.ErrTransactionNotFound
	}
	return ts.SpendingCategories[pos.Category].Transactions[pos.Transaction].Styles, nil
}
