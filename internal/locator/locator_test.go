package locator

import (
	"testing"

	"teamspace/internal/models"
)

func fixture() *models.TeamSpace {
	return &models.TeamSpace{
		UserList: []models.Member{
			{UserID: "U1", Username: "alice"},
			{UserID: "U2", Username: "bob", IsTeamLeader: true},
			{UserID: "U2", Username: "bob-dup"},
		},
		SpendingCategories: []models.SpendingCategory{
			{SpendingCategoryID: "C1", SpendingCategoryName: "Food", Transactions: []models.Transaction{
				{TransactionID: "X1", TransactionName: "Lunch"},
			}},
			{SpendingCategoryID: "C2", SpendingCategoryName: "Food", Transactions: []models.Transaction{
				{TransactionID: "X2", TransactionName: "Lunch"},
				{TransactionID: "X3", TransactionName: "Lunch"},
			}},
			{SpendingCategoryID: "C2", SpendingCategoryName: "Shadow"},
		},
	}
}

func TestCategoryIndex(t *testing.T) {
	ts := fixture()

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"first", "C1", 0},
		{"duplicate_id_first_wins", "C2", 1},
		{"missing", "C9", NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryIndex(ts, tt.id); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTransactionIndex(t *testing.T) {
	ts := fixture()

	t.Run("scans_every_category", func(t *testing.T) {
		pos := TransactionIndex(ts, "X3")
		if !pos.Found() || pos.Category != 1 || pos.Transaction != 1 {
			t.Errorf("expected (1,1), got %+v", pos)
		}
	})

	t.Run("duplicate_names_do_not_confuse", func(t *testing.T) {
		pos := TransactionIndex(ts, "X2")
		if pos.Category != 1 || pos.Transaction != 0 {
			t.Errorf("expected (1,0), got %+v", pos)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if pos := TransactionIndex(ts, "X9"); pos.Found() {
			t.Errorf("expected not found, got %+v", pos)
		}
	})

	t.Run("empty_team_space", func(t *testing.T) {
		if pos := TransactionIndex(&models.TeamSpace{}, "X1"); pos.Found() {
			t.Errorf("expected not found, got %+v", pos)
		}
	})
}

func TestMemberIndex(t *testing.T) {
	ts := fixture()

	if got := MemberIndex(ts, "U2"); got != 1 {
		t.Errorf("expected first U2 at 1, got %d", got)
	}
	if got := MemberIndex(ts, "U9"); got != NotFound {
		t.Errorf("expected not found, got %d", got)
	}
}

func TestLeaderIndex(t *testing.T) {
	if got := LeaderIndex(fixture()); got != 1 {
		t.Errorf("expected leader at 1, got %d", got)
	}
	if got := LeaderIndex(&models.TeamSpace{}); got != NotFound {
		t.Errorf("expected not found, got %d", got)
	}
}
