package domain

import "time"

// Floor is a level within a team's premises. Rooms is populated by listing
// operations only and is never persisted as part of the floor record.
type Floor struct {
	ID          int64
	Name        string
	Description string
	TeamID      int64
	Rooms       []Room
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
