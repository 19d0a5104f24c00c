package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createTaskRequest struct {
	Title       string `json:"title"        validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"     validate:"omitempty,datetime=2006-01-02"`
	AssigneeID  *int64 `json:"assignee_id"`
}

// updateTaskRequest rewrites descriptive fields. Omitted fields stay
// unchanged; an explicit empty due_date clears the date.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress blocked done"`
}

type assignRequest struct {
	// AssigneeID nil (or absent) clears the assignment.
	AssigneeID *int64 `json:"assignee_id"`
}

type addNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

type taskResponse struct {
	ID          int64  `json:"id"`
	TeamID      int64  `json:"team_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status"`
	AssigneeID  *int64 `json:"assignee_id,omitempty"`
	CreatorID   int64  `json:"creator_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type noteResponse struct {
	ID        int64  `json:"id"`
	TaskID    int64  `json:"task_id"`
	AuthorID  int64  `json:"author_id"`
	Body      string `json:"body"`
	System    bool   `json:"system"`
	CreatedAt string `json:"created_at"`
}

type taskDetailResponse struct {
	taskResponse
	Notes               []noteResponse `json:"notes"`
	AssigneeDeactivated bool           `json:"assignee_deactivated,omitempty"`
}

type taskListResponse struct {
	Items []taskResponse `json:"items"`
	Total int            `json:"total"`
}
