package dto

import (
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

// AssetCreateRequest payload for new assets.
type AssetCreateRequest struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
	FloorID      *int64  `json:"floor_id"`
	RoomID       *int64  `json:"room_id"`
	Photo        string  `json:"photo"`
	Supplier     string  `json:"supplier"`
	SerialNumber string  `json:"serial_number"`
}

// AssetUpdateRequest carries a partial asset update; absent fields are left
// unchanged.
type AssetUpdateRequest struct {
	Name         *string  `json:"name"`
	Code         *string  `json:"code"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Value        *float64 `json:"value"`
	Status       *string  `json:"status"`
	FloorID      *int64   `json:"floor_id"`
	RoomID       *int64   `json:"room_id"`
	Photo        *string  `json:"photo"`
	Supplier     *string  `json:"supplier"`
	SerialNumber *string  `json:"serial_number"`
}

// Changes converts the request into storage change fields.
func (r AssetUpdateRequest) Changes() storage.AssetChanges {
	changes := storage.AssetChanges{
		Name:         r.Name,
		Code:         r.Code,
		Category:     r.Category,
		Description:  r.Description,
		Value:        r.Value,
		FloorID:      r.FloorID,
		RoomID:       r.RoomID,
		Photo:        r.Photo,
		Supplier:     r.Supplier,
		SerialNumber: r.SerialNumber,
	}
	if r.Status != nil {
		status := domain.AssetStatus(*r.Status)
		changes.Status = &status
	}
	return changes
}

// AssetResponse is the public view of an asset.
type AssetResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Category     string    `json:"category,omitempty"`
	Description  string    `json:"description,omitempty"`
	Value        float64   `json:"value"`
	Status       string    `json:"status"`
	FloorID      *int64    `json:"floor_id,omitempty"`
	RoomID       *int64    `json:"room_id,omitempty"`
	Photo        string    `json:"photo,omitempty"`
	Supplier     string    `json:"supplier,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	TeamID       int64     `json:"team_id"`
	CreatedByID  int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CheckCodeResponse reports whether a code is taken within the team.
type CheckCodeResponse struct {
	Exists bool `json:"exists"`
}

// NewAssetResponse maps a domain asset.
func NewAssetResponse(asset *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		Name:         asset.Name,
		Code:         asset.Code,
		Category:     asset.Category,
		Description:  asset.Description,
		Value:        asset.Value,
		Status:       string(asset.Status),
		FloorID:      asset.FloorID,
		RoomID:       asset.RoomID,
		Photo:        asset.Photo,
		Supplier:     asset.Supplier,
		SerialNumber: asset.SerialNumber,
		TeamID:       asset.TeamID,
		CreatedByID:  asset.CreatedByID,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

// NewAssetResponses maps an asset list.
func NewAssetResponses(assets []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, NewAssetResponse(&assets[i]))
	}
	return out
}
