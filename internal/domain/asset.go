package domain

import "time"

// AssetStatus enumerates lifecycle states for an asset.
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "Active"
	AssetStatusMaintenance AssetStatus = "Maintenance"
	AssetStatusInactive    AssetStatus = "Inactive"
)

// Asset is a physical piece of equipment tracked for a team. Code is unique
// within the owning team only; two teams may register the same code.
type Asset struct {
	ID           int64
	Name         string
	Code         string
	Category     string
	Description  string
	Value        float64
	Status       AssetStatus
	FloorID      *int64
	RoomID       *int64
	Photo        string
	Supplier     string
	SerialNumber string
	TeamID       int64
	CreatedByID  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
