package service

import (
	"context"
	"errors"
	"testing"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

type teamFixture struct {
	svc     *TeamService
	users   *stubUserRepo
	manager *domain.User
	member  *domain.User
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	users := newStubUserRepo()

	manager, err := users.Create(context.Background(), &domain.User{
		Username: "alice", FullName: "Alice Admin", Role: domain.RoleManager, TeamID: 1, Active: true,
	})
	if err != nil {
		t.Fatalf("seed manager: %v", err)
	}
	member, err := users.Create(context.Background(), &domain.User{
		Username: "bob", FullName: "Bob Builder", Role: domain.RoleMember, TeamID: 1, Active: true,
	})
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}

	return &teamFixture{
		svc:     NewTeamService(users, discardLogger()),
		users:   users,
		manager: manager,
		member:  member,
	}
}

func TestAddMember_ManagerOnly(t *testing.T) {
	f := newTeamFixture(t)
	input := ports.AddMemberInput{FullName: "Carol Coder", Username: "Carol", Password: "pw123456", Role: domain.RoleMember}

	if _, err := f.svc.AddMember(context.Background(), f.member, input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}

	user, err := f.svc.AddMember(context.Background(), f.manager, input)
	if err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("expected normalised username, got %q", user.Username)
	}
	if user.TeamID != f.manager.TeamID || !user.Active {
		t.Fatalf("unexpected account: %+v", user)
	}
}

func TestAddMember_Validation(t *testing.T) {
	f := newTeamFixture(t)

	if _, err := f.svc.AddMember(context.Background(), f.manager, ports.AddMemberInput{
		FullName: "No Role", Username: "norole", Password: "pw123456", Role: "boss",
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad role, got %v", err)
	}

	if _, err := f.svc.AddMember(context.Background(), f.manager, ports.AddMemberInput{
		FullName: "Dup", Username: "BOB", Password: "pw123456", Role: domain.RoleMember,
	}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}
}

func TestRemoveMember_SoftDeactivates(t *testing.T) {
	f := newTeamFixture(t)

	if err := f.svc.RemoveMember(context.Background(), f.member, f.manager.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member actor, got %v", err)
	}
	if err := f.svc.RemoveMember(context.Background(), f.manager, f.manager.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for self-deactivation, got %v", err)
	}

	if err := f.svc.RemoveMember(context.Background(), f.manager, f.member.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	removed, err := f.users.FindByID(context.Background(), f.member.ID)
	if err != nil {
		t.Fatalf("account must survive removal: %v", err)
	}
	if removed.Active {
		t.Fatal("expected account to be deactivated")
	}
}

func TestChangeRole(t *testing.T) {
	f := newTeamFixture(t)

	if _, err := f.svc.ChangeRole(context.Background(), f.member, f.member.ID, domain.RoleManager); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member actor, got %v", err)
	}
	if _, err := f.svc.ChangeRole(context.Background(), f.manager, f.member.ID, "root"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}

	updated, err := f.svc.ChangeRole(context.Background(), f.manager, f.member.ID, domain.RoleManager)
	if err != nil {
		t.Fatalf("change role failed: %v", err)
	}
	if updated.Role != domain.RoleManager {
		t.Fatalf("role not applied: %+v", updated)
	}
}

func TestListMembers_InactiveVisibleToManagersOnly(t *testing.T) {
	f := newTeamFixture(t)
	if err := f.users.Deactivate(context.Background(), f.member.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := f.users.Create(context.Background(), &domain.User{
		Username: "carol", FullName: "Carol Coder", Role: domain.RoleMember, TeamID: 1, Active: true,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	members, err := f.svc.ListMembers(context.Background(), f.manager, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("manager should see all 3 accounts, got %d", len(members))
	}

	// A member asking for inactive accounts silently gets only active ones.
	members, err = f.svc.ListMembers(context.Background(), active, true)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, m := range members {
		if !m.Active {
			t.Fatalf("member must not see deactivated accounts: %+v", m)
		}
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 active accounts, got %d", len(members))
	}
}
