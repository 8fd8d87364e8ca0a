package testutil_test

import (
	"testing"

	"teamspace/internal/models"
	"teamspace/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"team_spaces", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	st1, _ := testutil.SetupTestStore(t)
	st2, db2 := testutil.SetupTestStore(t)

	testutil.CreateTestTeamSpace(t, st1)

	var count int64
	if err := db2.Table("team_spaces").Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected second database to be empty, got %d rows", count)
	}
	_ = st2
}

func TestFixtures(t *testing.T) {
	st, _ := testutil.SetupTestStore(t)

	ts := testutil.CreateTestTeamSpaceWithLeader(t, st, "U1", "alice")
	if ts.Version != 1 {
		t.Errorf("expected version 1, got %d", ts.Version)
	}

	cat := testutil.AddTestCategory(t, st, ts.TeamSpaceID, "Food", "500")
	tx := testutil.AddTestTransaction(t, st, ts.TeamSpaceID, 0, models.Transaction{
		TransactionName:   "Lunch",
		TransactionAmount: decimal.NewFromInt(20),
		UserID:            "U1",
		Username:          "alice",
	})

	got := testutil.MustFetch(t, st, ts.TeamSpaceID)
	if len(got.SpendingCategories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(got.SpendingCategories))
	}
	c := got.SpendingCategories[0]
	if c.SpendingCategoryID != cat.SpendingCategoryID {
		t.Errorf("expected category %s, got %s", cat.SpendingCategoryID, c.SpendingCategoryID)
	}
	testutil.AssertDecimal(t, c.AmountUsed, "20")
	if len(c.Transactions) != 1 || c.Transactions[0].TransactionID != tx.TransactionID {
		t.Errorf("expected transaction %s, got %+v", tx.TransactionID, c.Transactions)
	}
	if got.Version != 3 {
		t.Errorf("expected version 3 after two writes, got %d", got.Version)
	}
}
