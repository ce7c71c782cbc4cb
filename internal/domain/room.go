package domain

import "time"

// Room belongs to a floor. TeamID is a denormalized copy of the parent
// floor's team, stamped at creation so team-scoped listings avoid a join.
type Room struct {
	ID          int64
	Name        string
	Description string
	FloorID     int64
	TeamID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
