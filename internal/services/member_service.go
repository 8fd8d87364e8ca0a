package services

import (
	"context"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/events"
	"teamspace/internal/locator"
	"teamspace/internal/models"
	"teamspace/internal/store"
)

// memberService handles membership business logic.
type memberService struct {
	base
}

// NewMemberService creates a new MemberServicer.
func NewMemberService(d Deps) MemberServicer {
	return &memberService{base: newBase(d)}
}

// AddUserToTeamSpace attaches userID to the team space holding joinCode.
// A user who is already a member is not added twice.
func (s *memberService) AddUserToTeamSpace(ctx context.Context, joinCode, userID, username string) (*models.TeamSpace, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID is required")
	}

	target, err := s.findByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}

	member := models.Member{UserID: userID, Username: username, Styles: models.Styles{}}
	added := false
	version, err := s.mutate(ctx, "addUserToTeamSpace", target.TeamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		// The code may have rotated since the lookup.
		if ts.TeamSpaceJoinCode != joinCode {
			return nil, apperrors.ErrInvalidJoinCode
		}
		target = ts
		// Joining twice is a no-op rather than a second entry, so userList
		// never holds the same userID twice and member lookups stay unambiguous.
		if locator.MemberIndex(ts, userID) != locator.NotFound {
			added = false
			return nil, nil
		}
		added = true
		return []store.Op{store.Append(models.FieldUserList, member)}, nil
	})
	if err != nil {
		return nil, err
	}

	if added {
		target.UserList = append(target.UserList, member)
		target.Version = version
		s.Audit.Log(ctx, AuditEntry{
			Event:        events.MemberAdded,
			TeamSpaceID:  target.TeamSpaceID,
			ResourceType: ResourceMember,
			ResourceID:   userID,
			Version:      version,
			Changes:      map[string]any{"username": username},
		})
	}
	return target, nil
}

// findByJoinCode returns the first team space whose join code matches.
func (s *memberService) findByJoinCode(ctx context.Context, joinCode string) (*models.TeamSpace, error) {
	if joinCode == "" {
		return nil, apperrors.ErrInvalidJoinCode
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	matches, err := s.Store.FetchByField(ctx, models.FieldJoinCode, joinCode)
	if err != nil {
		return nil, storeError(err)
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrInvalidJoinCode
	}
	return &matches[0], nil
}

// RemoveUserFromTeamSpace removes the member and returns it. Removing the
// leader is allowed.
func (s *memberService) RemoveUserFromTeamSpace(ctx context.Context, teamSpaceID, userID string) (*models.Member, error) {
	var removed models.Member
	version, err := s.mutate(ctx, "removeUserFromTeamSpace", teamSpaceID, func(ts *models.TeamSpace) ([]store.Op, error) {
		idx := locator.MemberIndex(ts, userID)
		if idx == locator.NotFound {
			return nil, apperrors.ErrMemberNotFound
		}
		removed = ts.UserList[idx]
		return []store.Op{store.Remove(store.Path(models.FieldUserList, idx))}, nil
	})
	if err != nil {
		return nil, err
	}

	s.Audit.Log(ctx, AuditEntry{
		Event:        events.MemberRemoved,
		TeamSpaceID:  teamSpaceID,
		ResourceType: ResourceMember,
		ResourceID:   userID,
		Version:      version,
	})
	return &removed, nil
}

// GetAllTeamSpaceUsers returns the members in join order.
func (s *memberService) GetAllTeamSpaceUsers(ctx context.Context, teamSpaceID string) ([]models.Member, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	return ts.UserList, nil
}

// GetTeamSpaceLeader returns the first member flagged as leader.
func (s *memberService) GetTeamSpaceLeader(ctx context.Context, teamSpaceID string) (*models.Member, error) {
	ts, err := s.fetch(ctx, teamSpaceID)
	if err != nil {
		return nil, err
	}
	idx := locator.LeaderIndex(ts)
	if idx == locator.NotFound {
		return nil, apperrors.ErrLeaderNotFound
	}
	return &ts.UserList[idx], nil
}

// GetTeamSpaceByUserID returns the first team space listing userID.
func (s *memberService) GetTeamSpaceByUserID(ctx context.Context, userID string) (*models.TeamSpace, error) {
	ts, _, err := s.findMember(ctx, userID)
	return ts, err
}

// GetUserByID returns the member entry for userID from the first team space
// listing it.
func (s *memberService) GetUserByID(ctx context.Context, userID string) (*models.Member, error) {
	_, m, err := s.findMember(ctx, userID)
	return m, err
}

// GetUserStyles returns the member's presentation metadata.
func (s *memberService) GetUserStyles(ctx context.Context, userID string) (models.Styles, error) {
	_, m, err := s.findMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.Styles, nil
}

// findMember scans every team space in store order; the first match wins.
func (s *memberService) findMember(ctx context.Context, userID string) (*models.TeamSpace, *models.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	matches, err := s.Store.Scan(ctx, func(ts *models.TeamSpace) bool {
		return locator.MemberIndex(ts, userID) != locator.NotFound
	})
	if err != nil {
		return nil, nil, storeError(err)
	}
	if len(matches) == 0 {
		return nil, nil, apperrors.ErrMemberNotFound
	}
	ts := &matches[0]
	return ts, &ts.UserList[locator.MemberIndex(ts, userID)], nil
}
