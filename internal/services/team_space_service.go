package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/events"
	"teamspace/internal/ids"
	"teamspace/internal/logger"
	"teamspace/internal/models"
	"teamspace/internal/store"
)

// teamSpaceService handles team-space-level business logic.
type teamSpaceService struct {
	base
}

// NewTeamSpaceService creates a new TeamSpaceServicer.
func NewTeamSpaceService(d Deps) TeamSpaceServicer {
	return &teamSpaceService{base: newBase(d)}
}

// CreateTeamSpace stores a new team space whose only member is its leader.
// IDs and join codes rely on random entropy, not a uniqueness check.
func (s *teamSpaceService) CreateTeamSpace(ctx context.Context, name, leaderUserID, leaderUsername string) (*models.TeamSpace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "team space name is required")
	}
	if leaderUserID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "leader user ID is required")
	}

	ts := models.NewTeamSpace(ids.NewTeamSpaceID(), name, ids.NewJoinCode(), leaderUserID, leaderUsername)

	putCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Store.Put(putCtx, ts); err != nil {
		logger.Get().Errorw("failed to create team space", "error", err, "leader_user_id", leaderUserID)
		return nil, storeError(err)
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.TeamSpaceCreated,
		TeamSpaceID:  ts.TeamSpaceID,
		ResourceType: ResourceTeamSpace,
		ResourceID:   ts.TeamSpaceID,
		Version:      ts.Version,
		Changes:      map[string]any{"teamSpaceName": name, "leaderUserID": leaderUserID},
	})
	return ts, nil
}

// EditTeamSpace replaces the name and total budget together.
func (s *teamSpaceService) EditTeamSpace(ctx context.Context, teamSpaceID, newName string, newTotalBudget decimal.Decimal) error {
	if strings.TrimSpace(newName) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "team space name is required")
	}

	version, err := s.mutate(ctx, "editTeamSpace", teamSpaceID, func(*models.TeamSpace) ([]store.Op, error) {
		return []store.Op{
			store.Set(models.FieldTeamSpaceName, newName),
			store.Set(models.FieldTotalBudget, newTotalBudget),
		}, nil
	})
	if err != nil {
		return err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.TeamSpaceEdited,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceTeamSpace,
		ResourceID:   teamSpaceID,
		Version:      version,
		Changes:      map[string]any{"teamSpaceName": newName, "totalBudget": newTotalBudget},
	})
	return nil
}

// GenerateNewJoinCode replaces the join code wholesale. The old code stops
// working immediately.
func (s *teamSpaceService) GenerateNewJoinCode(ctx context.Context, teamSpaceID string) (string, error) {
	code := ids.NewJoinCode()

	version, err := s.mutate(ctx, "generateNewJoinCode", teamSpaceID, func(*models.TeamSpace) ([]store.Op, error) {
		return []store.Op{store.Set(models.FieldJoinCode, code)}, nil
	})
	if err != nil {
		return "", err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.JoinCodeRotated,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceTeamSpace,
		ResourceID:   teamSpaceID,
		Version:      version,
	})
	return code, nil
}

// GetAllTeamSpaces returns every team space.
func (s *teamSpaceService) GetAllTeamSpaces(ctx context.Context) ([]models.TeamSpace, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	all, err := s.Store.FetchAll(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return all, nil
}

// GetTeamSpaceByID returns one team space.
func (s *teamSpaceService) GetTeamSpaceByID(ctx context.Context, teamSpaceID string) (*models.TeamSpace, error) {
	return s.fetch(ctx, teamSpaceID)
}

// GetJoinCode returns the current join code.
func (s *teamSpaceService) GetJoinCode(ctx context.Context, teamSpaceID string) (string, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return "", err
	}
	return ts.TeamSpaceJoinCode, nil
}

// GetTeamSpaceStyles returns the team space's presentation metadata.
func (s *teamSpaceService) GetTeamSpaceStyles(ctx context.Context, teamSpaceID string) (models.Styles, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	return ts.Styles, nil
}
