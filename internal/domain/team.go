package domain

import "time"

// Team is the root tenant scope; floors, rooms, assets and users hang off it.
type Team struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
