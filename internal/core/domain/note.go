package domain

import "time"

// Note is a free-text comment attached to a task. A note cannot outlive
// its task. Notes are immutable once written except for soft deletion.
// System notes are generated audit entries (status and assignment
// changes); in storage they differ from user notes only by the flag.
type Note struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	System    bool      `json:"system"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
