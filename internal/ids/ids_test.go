package ids

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
)

func TestElementIDs(t *testing.T) {
	tests := []struct {
		name    string
		gen     func() string
		pattern string
	}{
		{"team_space", NewTeamSpaceID, `^T[0-9a-f]{8}$`},
		{"category", NewCategoryID, `^C[0-9a-f]{8}$`},
		{"transaction", NewTransactionID, `^X[0-9a-f]{8}$`},
		{"join_code", NewJoinCode, `^[0-9a-f]{10}$`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := regexp.MustCompile(tt.pattern)
			seen := make(map[string]bool)
			for i := 0; i < 100; i++ {
				id := tt.gen()
				if !re.MatchString(id) {
					t.Fatalf("id %q does not match %s", id, tt.pattern)
				}
				seen[id] = true
			}
			if len(seen) < 99 {
				t.Errorf("expected distinct ids, got %d unique of 100", len(seen))
			}
		})
	}
}

func TestNewRecordID(t *testing.T) {
	id := NewRecordID()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}

	// Later IDs sort after earlier ones at millisecond granularity.
	if next := NewRecordID(); next[:8] < id[:8] {
		t.Errorf("expected %q to sort after %q", next, id)
	}
}
