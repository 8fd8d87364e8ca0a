// Package store is the record store client: one document per team space,
// read whole and updated through path-addressed operations.
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"teamspace/internal/models"
)

var (
	// ErrNotFound is returned when no record has the requested key.
	ErrNotFound = errors.New("store: record not found")

	// ErrConditionFailed is returned when an update's condition does not hold,
	// typically because the record changed after it was read.
	ErrConditionFailed = errors.New("store: condition failed")

	// ErrInvalidPath is returned when a path is malformed or does not address
	// a value of the kind the operation needs.
	ErrInvalidPath = errors.New("store: invalid path")
)

// Condition guards an update. The zero value always holds.
type Condition struct {
	version int64
	check   bool
}

// Always is the unconditional update guard.
var Always = Condition{}

// IfVersion holds only while the record is still at version v.
func IfVersion(v int64) Condition {
	return Condition{version: v, check: true}
}

func (c Condition) holds(current int64) bool {
	return !c.check || c.version == current
}

// Store reads and writes team space records. No method enforces the
// aggregate, uniqueness or ordering rules of the nested lists; that is
// the caller's job.
type Store interface {
	// FetchAll returns every record in creation order.
	FetchAll(ctx context.Context) ([]models.TeamSpace, error)

	// FetchByID returns the record keyed by teamSpaceID or ErrNotFound.
	FetchByID(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error)

	// FetchByField returns records whose top-level field equals value.
	// teamSpaceID and teamSpaceJoinCode are indexed; any other field is a
	// full scan followed by a filter.
	FetchByField(ctx context.Context, field, value string) ([]models.TeamSpace, error)

	// Scan walks every record and keeps those matching keep. It always
	// reads the whole table.
	Scan(ctx context.Context, keep func(*models.TeamSpace) bool) ([]models.TeamSpace, error)

	// Put writes ts whole, replacing any record with the same ID, and sets
	// ts.Version to the stored version.
	Put(ctx context.Context, ts *models.TeamSpace) error

	// UpdateField sets the value at path.
	UpdateField(ctx context.Context, teamSpaceID, path string, value any) error

	// AppendToList appends elems to the list at path.
	AppendToList(ctx context.Context, teamSpaceID, path string, elems ...any) error

	// RemoveAt removes element index from the list at path.
	RemoveAt(ctx context.Context, teamSpaceID, path string, index int) error

	// Increment adds delta to the number at path.
	Increment(ctx context.Context, teamSpaceID, path string, delta decimal.Decimal) error

	// Update applies ops atomically when cond holds and returns the new
	// version. Either every op lands or none does.
	Update(ctx context.Context, teamSpaceID string, cond Condition, ops ...Op) (int64, error)

	// Close releases resources held by the store.
	Close() error
}
