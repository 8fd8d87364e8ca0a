package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"teamspace/internal/ids"
	"teamspace/internal/models"
	"teamspace/internal/store"

	"github.com/shopspring/decimal"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestImage is the image URL fixtures attach to categories and transactions.
const TestImage = "https://images.test/fixture.jpg"

// CreateTestTeamSpace stores a team space led by a fresh user.
func CreateTestTeamSpace(t *testing.T, st store.Store) *models.TeamSpace {
	t.Helper()

	n := nextID()
	return CreateTestTeamSpaceWithLeader(t, st, fmt.Sprintf("U%d", n), fmt.Sprintf("leader%d", n))
}

// CreateTestTeamSpaceWithLeader stores a team space led by the given user.
func CreateTestTeamSpaceWithLeader(t *testing.T, st store.Store, userID, username string) *models.TeamSpace {
	t.Helper()

	ts := models.NewTeamSpace(ids.NewTeamSpaceID(), fmt.Sprintf("Team %d", nextID()), ids.NewJoinCode(), userID, username)
	if err := st.Put(context.Background(), ts); err != nil {
		t.Fatalf("failed to create test team space: %v", err)
	}
	return ts
}

// AddTestCategory appends a category with the given budget limit to the
// stored team space and returns it.
func AddTestCategory(t *testing.T, st store.Store, teamSpaceID, name, budgetLimit string) models.SpendingCategory {
	t.Helper()

	cat := models.NewSpendingCategory(ids.NewCategoryID(), name, decimal.RequireFromString(budgetLimit), TestImage)
	if err := st.AppendToList(context.Background(), teamSpaceID, models.FieldSpendingCategories, cat); err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// AddTestTransaction appends a transaction to the category at catIdx and
// moves its aggregate in the same update.
func AddTestTransaction(t *testing.T, st store.Store, teamSpaceID string, catIdx int, tx models.Transaction) models.Transaction {
	t.Helper()

	if tx.TransactionID == "" {
		tx.TransactionID = ids.NewTransactionID()
	}
	if tx.Styles == nil {
		tx.Styles = models.ImageStyles(TestImage)
	}
	_, err := st.Update(context.Background(), teamSpaceID, store.Always,
		store.Append(store.Path(models.FieldSpendingCategories, catIdx, models.FieldTransactions), tx),
		store.Increment(store.Path(models.FieldSpendingCategories, catIdx, models.FieldAmountUsed), tx.TransactionAmount),
	)
	if err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// MustFetch reads the team space back from the store.
func MustFetch(t *testing.T, st store.Store, teamSpaceID string) *models.TeamSpace {
	t.Helper()

	ts, err := st.FetchByID(context.Background(), teamSpaceID)
	if err != nil {
		t.Fatalf("failed to fetch team space %s: %v", teamSpaceID, err)
	}
	return ts
}
