package domain

// Action names an operation checked against the permission rules.
type Action string

const (
	ActionRead          Action = "read"
	ActionUpdate        Action = "update"
	ActionAssign        Action = "assign"
	ActionDelete        Action = "delete"
	ActionManageMembers Action = "manage-members"
)

// CanActOnTask decides whether actor may perform action on task:
//
//	read    – any member of the task's team
//	update  – the assignee or any manager of the team
//	assign  – managers of the team only
//	delete  – managers of the team only
//
// Callers must evaluate this before applying any mutation; a denied
// request has no side effects.
func CanActOnTask(actor *User, task *Task, action Action) bool {
	if actor == nil || task == nil || actor.TeamID != task.TeamID {
		return false
	}

	switch action {
	case ActionRead:
		return true
	case ActionUpdate:
		if actor.IsManager() {
			return true
		}
		return task.AssigneeID != nil && *task.AssigneeID == actor.ID
	case ActionAssign, ActionDelete:
		return actor.IsManager()
	default:
		return false
	}
}

// CanManageTeam decides whether actor may change membership or roles of
// the given team. Manager-only, and only within the actor's own team.
func CanManageTeam(actor *User, teamID int64) bool {
	return actor != nil && actor.IsManager() && actor.TeamID == teamID
}
