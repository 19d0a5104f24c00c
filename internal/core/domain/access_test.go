package domain

import "testing"

func ptr(v int64) *int64 { return &v }

func TestCanActOnTask(t *testing.T) {
	manager := &User{ID: 1, Role: RoleManager, TeamID: 10}
	assignee := &User{ID: 2, Role: RoleMember, TeamID: 10}
	member := &User{ID: 3, Role: RoleMember, TeamID: 10}
	outsider := &User{ID: 4, Role: RoleManager, TeamID: 20}

	task := &Task{ID: 100, TeamID: 10, AssigneeID: ptr(2)}

	cases := []struct {
		name   string
		actor  *User
		action Action
		want   bool
	}{
		{"member reads", member, ActionRead, true},
		{"outsider cannot read", outsider, ActionRead, false},
		{"assignee updates", assignee, ActionUpdate, true},
		{"manager updates", manager, ActionUpdate, true},
		{"non-assignee member cannot update", member, ActionUpdate, false},
		{"manager assigns", manager, ActionAssign, true},
		{"member cannot assign", member, ActionAssign, false},
		{"assignee cannot assign", assignee, ActionAssign, false},
		{"manager deletes", manager, ActionDelete, true},
		{"member cannot delete", member, ActionDelete, false},
		{"outsider manager cannot delete", outsider, ActionDelete, false},
		{"nil actor denied", nil, ActionRead, false},
		{"unknown action denied", manager, Action("purge"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanActOnTask(tc.actor, task, tc.action); got != tc.want {
				t.Fatalf("CanActOnTask(%s) = %v, want %v", tc.action, got, tc.want)
			}
		})
	}
}

func TestCanActOnTask_UnassignedTask(t *testing.T) {
	member := &User{ID: 3, Role: RoleMember, TeamID: 10}
	task := &Task{ID: 100, TeamID: 10}

	if CanActOnTask(member, task, ActionUpdate) {
		t.Fatal("member must not update an unassigned task")
	}
}

func TestCanManageTeam(t *testing.T) {
	manager := &User{ID: 1, Role: RoleManager, TeamID: 10}
	member := &User{ID: 2, Role: RoleMember, TeamID: 10}

	if !CanManageTeam(manager, 10) {
		t.Fatal("manager must manage own team")
	}
	if CanManageTeam(manager, 20) {
		t.Fatal("manager must not manage another team")
	}
	if CanManageTeam(member, 10) {
		t.Fatal("member must not manage members")
	}
	if CanManageTeam(nil, 10) {
		t.Fatal("nil actor must be denied")
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusOpen, StatusInProgress, StatusBlocked, StatusDone} {
		if !s.IsValid() {
			t.Fatalf("status %q should be valid", s)
		}
	}
	if TaskStatus("archived").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}
