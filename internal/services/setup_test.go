package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"teamspace/internal/events"
	"teamspace/internal/imagesearch"
	"teamspace/internal/models"
	"teamspace/internal/store"
	"teamspace/internal/testutil"
)

// testEnv wires every service over one in-memory store.
type testEnv struct {
	store  *store.GormStore
	db     *gorm.DB
	images *testutil.FakeImageSearcher
	events *events.Recorder
	now    time.Time
	deps   Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, db := testutil.SetupTestStore(t)
	env := &testEnv{
		store:  st,
		db:     db,
		images: &testutil.FakeImageSearcher{Results: []string{testutil.TestImage}},
		events: &events.Recorder{},
		now:    time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	env.deps = Deps{
		Store:   st,
		Images:  imagesearch.NewPicker(env.images, 0),
		Audit:   NewAuditService(db, env.events),
		Now:     func() time.Time { return env.now },
		Retries: DefaultConflictRetries,
	}
	return env
}

func (e *testEnv) teamSpaces() TeamSpaceServicer { return NewTeamSpaceService(e.deps) }
func (e *testEnv) members() MemberServicer { return NewMemberService(e.deps) }
func (e *testEnv) categories() CategoryServicer { return NewCategoryService(e.deps) }
func (e *testEnv) transactions() TransactionServicer { return NewTransactionService(e.deps) }
func (e *testEnv) queries() QueryServicer { return NewQueryService(e.deps) }

// racingStore lets another writer land between every read and write for the
// first n updates.
type racingStore struct {
	store.Store
	n       int32
	calls   atomic.Int32
	collide func(ctx context.Context, teamSpaceID string) error
}

func (r *racingStore) Update(ctx context.Context, teamSpaceID string, cond store.Condition, ops ...store.Op) (int64, error) {
	if r.calls.Add(1) <= r.n {
		if err := r.collide(ctx, teamSpaceID); err != nil {
			return 0, err
		}
	}
	return r.Store.Update(ctx, teamSpaceID, cond, ops...)
}

func mustCategory(t *testing.T, ts *models.TeamSpace, id string) models.SpendingCategory {
	t.Helper()
	for _, c := range ts.SpendingCategories {
		if c.SpendingCategoryID == id {
			return c
		}
	}
	t.Fatalf("category %s not found", id)
	return models.SpendingCategory{}
}
