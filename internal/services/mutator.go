package services

import (
	"context"
	"errors"
	"time"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/logger"
	"teamspace/internal/metrics"
	"teamspace/internal/models"
	"teamspace/internal/store"
)

// Defaults applied when Deps leaves a field unset.
const (
	DefaultStoreTimeout    = 5 * time.Second
	DefaultConflictRetries = 3
)

// Deps bundles the collaborators shared by every service.
type Deps struct {
	Store   store.Store
	Images  ImagePicker
	Audit   AuditServicer
	Now     func() time.Time
	Timeout time.Duration
	Retries int
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Timeout <= 0 {
		d.Timeout = DefaultStoreTimeout
	}
	if d.Retries < 0 {
		d.Retries = DefaultConflictRetries
	}
	if d.Audit == nil {
		d.Audit = nopAudit{}
	}
	return d
}

// base holds what every service needs to read and write team spaces.
type base struct {
	Deps
}

func newBase(d Deps) base {
	return base{Deps: d.withDefaults()}
}

// fetch reads one team space, mapping a missing record to ErrTeamSpaceNotFound.
func (b *base) fetch(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	ts, err := b.Store.FetchByID(ctx, teamSpaceID)
	if err != nil {
		return nil, storeError(err)
	}
	return ts, nil
}

// planFunc turns the current team space into the ops of one mutation. It
// returns an AppError when a target is missing.
type planFunc func(ts *models.TeamSpace) ([]store.Op, error)

// mutate reads the team space, plans ops against it and writes them only if
// nobody else wrote in between. A conflicting write re-runs the plan against
// fresh data, up to Retries more times.
func (b *base) mutate(ctx context.Context, operation, teamSpaceID string, plan planFunc) (int64, error) {
	for attempt := 0; ; attempt++ {
		ts, err := b.fetch(ctx, teamSpaceID)
		if err != nil {
			return 0, err
		}

		ops, err := plan(ts)
		if err != nil {
			return 0, err
		}
		if len(ops) == 0 {
			return ts.Version, nil
		}

		version, err := b.write(ctx, teamSpaceID, store.IfVersion(ts.Version), ops)
		if err == nil {
			return version, nil
		}
		if !errors.Is(err, store.ErrConditionFailed) {
			logger.Get().Errorw("team space update failed",
				"operation", operation,
				"team_space_id", teamSpaceID,
				"error", err,
			)
			return 0, storeError(err)
		}
		if attempt >= b.Retries {
			logger.Get().Warnw("team space update conflicted, giving up",
				"operation", operation,
				"team_space_id", teamSpaceID,
				"attempts", attempt+1,
			)
			return 0, apperrors.Wrap(apperrors.ErrConflict, err)
		}
		metrics.ConflictRetries.WithLabelValues(operation).Inc()
	}
}

func (b *base) write(ctx context.Context, teamSpaceID string, cond store.Condition, ops []store.Op) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()
	return b.Store.Update(ctx, teamSpaceID, cond, ops...)
}

// today is the current calendar date.
func (b *base) today() models.Date {
	return models.NewDate(b.Now())
}

// storeError maps store errors onto the application taxonomy.
func storeError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, store.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrTeamSpaceNotFound, err)
	default:
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
}
