package domain

import "time"

// User is an operator account. Team membership is optional; users without a
// team are treated as root-scoped.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Company      string
	Photo        string
	TeamID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
