package domain

import (
	"errors"
	"time"
)

var ErrTeamNotFound = errors.New("team not found")
var ErrTeamExists = errors.New("team already exists")

// Team is the tenant boundary: it owns a set of users and tasks, and is
// the unit of manager authority.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
