package services

import (
	"context"
	"testing"

	apperrors "teamspace/internal/errors"
	"teamspace/internal/testutil"
)

func TestAddUserToTeamSpace(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid_join_code", func(t *testing.T) {
		env := newTestEnv(t)
		testutil.CreateTestTeamSpace(t, env.store)

		ts, err := env.members().AddUserToTeamSpace(ctx, "0000000000", "U2", "bob")
		testutil.AssertAppError(t, err, "INVALID_JOIN_CODE")
		if ts != nil {
			t.Errorf("expected nil team space, got %+v", ts)
		}
	})

	t.Run("appends_non_leader", func(t *testing.T) {
		env := newTestEnv(t)
		created := testutil.CreateTestTeamSpaceWithLeader(t, env.store, "U1", "alice")

		ts, err := env.members().AddUserToTeamSpace(ctx, created.TeamSpaceJoinCode, "U2", "bob")
		testutil.AssertNoError(t, err)
		if ts.TeamSpaceID != created.TeamSpaceID {
			t.Errorf("expected %s, got %s", created.TeamSpaceID, ts.TeamSpaceID)
		}

		got := testutil.MustFetch(t, env.store, created.TeamSpaceID)
		if len(got.UserList) != 2 {
			t.Fatalf("expected 2 members, got %d", len(got.UserList))
		}
		if m := got.UserList[1]; m.UserID != "U2" || m.Username != "bob" || m.IsTeamLeader {
			t.Errorf("unexpected member %+v", m)
		}
	})

	t.Run("existing_member_not_duplicated", func(t *testing.T) {
		env := newTestEnv(t)
		created := testutil.CreateTestTeamSpaceWithLeader(t, env.store, "U1", "alice")

		_, err := env.members().AddUserToTeamSpace(ctx, created.TeamSpaceJoinCode, "U1", "alice")
		testutil.AssertNoError(t, err)

		got := testutil.MustFetch(t, env.store, created.TeamSpaceID)
		if len(got.UserList) != 1 {
			t.Errorf("expected 1 member, got %d", len(got.UserList))
		}
		if got.Version != created.Version {
			t.Errorf("expected no write, version moved %d -> %d", created.Version, got.Version)
		}
	})
}

func TestRemoveUserFromTeamSpace(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ts := testutil.CreateTestTeamSpaceWithLeader(t, env.store, "U1", "alice")
	for _, u := range []string{"U2", "U3"} {
		_, err := env.members().AddUserToTeamSpace(ctx, ts.TeamSpaceJoinCode, u, "user"+u)
		testutil.AssertNoError(t, err)
	}

	t.Run("removes_only_that_member", func(t *testing.T) {
		removed, err := env.members().RemoveUserFromTeamSpace(ctx, ts.TeamSpaceID, "U2")
		testutil.AssertNoError(t, err)
		if removed.UserID != "U2" {
			t.Errorf("expected U2 returned, got %+v", removed)
		}

		users, err := env.members().GetAllTeamSpaceUsers(ctx, ts.TeamSpaceID)
		testutil.AssertNoError(t, err)
		if len(users) != 2 || users[0].UserID != "U1" || users[1].UserID != "U3" {
			t.Errorf("unexpected users %+v", users)
		}
	})

	t.Run("missing_member", func(t *testing.T) {
		_, err := env.members().RemoveUserFromTeamSpace(ctx, ts.TeamSpaceID, "U9")
		testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	})

	t.Run("leader_can_be_removed", func(t *testing.T) {
		_, err := env.members().RemoveUserFromTeamSpace(ctx, ts.TeamSpaceID, "U1")
		testutil.AssertNoError(t, err)

		_, err = env.members().GetTeamSpaceLeader(ctx, ts.TeamSpaceID)
		testutil.AssertAppError(t, err, "LEADER_NOT_FOUND")
	})
}

func TestMemberLookups(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	first := testutil.CreateTestTeamSpaceWithLeader(t, env.store, "U1", "alice")
	second := testutil.CreateTestTeamSpaceWithLeader(t, env.store, "U2", "bob")

	leader, err := env.members().GetTeamSpaceLeader(ctx, second.TeamSpaceID)
	testutil.AssertNoError(t, err)
	if leader.UserID != "U2" {
		t.Errorf("expected leader U2, got %s", leader.UserID)
	}

	ts, err := env.members().GetTeamSpaceByUserID(ctx, "U1")
	testutil.AssertNoError(t, err)
	if ts.TeamSpaceID != first.TeamSpaceID {
		t.Errorf("expected %s, got %s", first.TeamSpaceID, ts.TeamSpaceID)
	}

	m, err := env.members().GetUserByID(ctx, "U2")
	testutil.AssertNoError(t, err)
	if m.Username != "bob" {
		t.Errorf("expected bob, got %s", m.Username)
	}

	styles, err := env.members().GetUserStyles(ctx, "U2")
	testutil.AssertNoError(t, err)
	if styles == nil {
		t.Error("expected empty styles, got nil")
	}

	_, err = env.members().GetUserByID(ctx, "U9")
	testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	_, err = env.members().GetTeamSpaceByUserID(ctx, "U9")
	testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	if status := apperrors.As(err).Status; status != apperrors.StatusMissing {
		t.Errorf("expected an unknown user to be reported as missing (%d), got %d", apperrors.StatusMissing, status)
	}
}
