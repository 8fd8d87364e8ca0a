package services

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/locator"
	"teamspace/internal/models"
)

// queryService derives read-only projections from whole team spaces.
type queryService struct {
	base
}

// NewQueryService creates a new QueryServicer.
func NewQueryService(d Deps) QueryServicer {
	return &queryService{base: newBase(d)}
}

// AllTransactions flattens every category's transactions, newest date first.
func (s *queryService) AllTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	out := []models.Transaction{}
	for _, c := range ts.SpendingCategories {
		out = append(out, c.Transactions...)
	}
	sortByDateDesc(out)
	return out, nil
}

// TransactionsByCategory returns one category's transactions, newest date first.
func (s *queryService) TransactionsByCategory(ctx context.Context, teamSpaceID, categoryID string) ([]models.Transaction, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	idx := locator.CategoryIndex(ts, categoryID)
	if idx == locator.NotFound {
		return nil, apperrors.ErrCategoryNotFound
	}
	out := append([]models.Transaction{}, ts.SpendingCategories[idx].Transactions...)
	sortByDateDesc(out)
	return out, nil
}

// RecentTransactions returns transactions dated today or yesterday. Each
// category contributes its today entries before its yesterday entries, and
// the collected list is re-sorted after every category, so the result is a
// stable date-descending sort of that collection order.
func (s *queryService) RecentTransactions(ctx context.Context, teamSpaceID string) ([]models.Transaction, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	yesterday := today.AddDays(-1)

	out := []models.Transaction{}
	for _, c := range ts.SpendingCategories {
		for _, day := range []models.Date{today, yesterday} {
			for _, tx := range c.Transactions {
				if tx.TransactionDate.Equal(day) {
					out = append(out, tx)
				}
			}
		}
		sortByDateDesc(out)
	}
	return out, nil
}

// TotalAmountUsed sums amountUsed over every category.
func (s *queryService) TotalAmountUsed(ctx context.Context, teamSpaceID string) (decimal.Decimal, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return decimal.Zero, err
	}
	return ts.TotalAmountUsed(), nil
}

// TotalBudget returns the team space's total budget.
func (s *queryService) TotalBudget(ctx context.Context, teamSpaceID string) (decimal.Decimal, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return decimal.Zero, err
	}
	return ts.TotalBudget, nil
}

// TransactionsByUserID scans every team space and returns all transactions
// of the team spaces userID belongs to, in category order. A user in no
// team space gets an empty list.
func (s *queryService) TransactionsByUserID(ctx context.Context, userID string) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	matches, err := s.Store.Scan(ctx, func(ts *models.TeamSpace) bool {
		return ts.HasMember(userID)
	})
	if err != nil {
		return nil, storeError(err)
	}

	out := []models.Transaction{}
	for _, ts := range matches {
		for _, c := range ts.SpendingCategories {
			out = append(out, c.Transactions...)
		}
	}
	return out, nil
}

// sortByDateDesc orders newest first; equal dates keep their original order.
func sortByDateDesc(txs []models.Transaction) {
	slices.SortStableFunc(txs, func(a, b models.Transaction) int {
		return b.TransactionDate.Compare(a.TransactionDate)
	})
}
