package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/storage"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// AssetService exposes asset workflows. Codes are unique per team; the
// pre-check here exists to produce the friendly error before the store's own
// uniqueness guarantee fires, and losing that race still surfaces
// storage.ErrCodeTaken from the insert.
type AssetService struct {
	assets     storage.AssetStore
	dispatcher events.Dispatcher
}

// AssetCreateInput describes an asset creation payload. Team and creator are
// taken from the authenticated caller, not from here.
type AssetCreateInput struct {
	Name         string
	Code         string
	Category     string
	Description  string
	Value        float64
	Status       domain.AssetStatus
	FloorID      *int64
	RoomID       *int64
	Photo        string
	Supplier     string
	SerialNumber string
}

// NewAssetService constructs the service.
func NewAssetService(assets storage.AssetStore, dispatcher events.Dispatcher) *AssetService {
	return &AssetService{assets: assets, dispatcher: dispatcher}
}

// ListAssets returns the scope's assets.
func (s *AssetService) ListAssets(ctx context.Context, teamID *int64) ([]domain.Asset, error) {
	return s.assets.ListAssets(ctx, teamID)
}

// GetAsset fetches one asset, rejecting cross-team reads.
func (s *AssetService) GetAsset(ctx context.Context, teamID, id int64) (*domain.Asset, error) {
	asset, err := s.assets.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.TeamID != teamID {
		return nil, storage.ErrAccessDenied
	}
	return asset, nil
}

// CreateAsset validates the payload, pre-checks the team-scoped code and
// inserts the asset stamped with the caller's team and identity.
func (s *AssetService) CreateAsset(ctx context.Context, teamID, actorID int64, input AssetCreateInput) (*domain.Asset, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Code) == "" {
		return nil, apperrors.NewValidationError("nome e código são obrigatórios", nil)
	}

	exists, err := s.assets.AssetCodeExists(ctx, input.Code, 0, teamID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, storage.ErrCodeTaken
	}

	asset := &domain.Asset{
		Name:         strings.TrimSpace(input.Name),
		Code:         strings.TrimSpace(input.Code),
		Category:     input.Category,
		Description:  input.Description,
		Value:        input.Value,
		Status:       input.Status,
		FloorID:      input.FloorID,
		RoomID:       input.RoomID,
		Photo:        input.Photo,
		Supplier:     input.Supplier,
		SerialNumber: input.SerialNumber,
		TeamID:       teamID,
		CreatedByID:  actorID,
	}
	if err := s.assets.CreateAsset(ctx, asset); err != nil {
		return nil, err
	}

	s.publishAssetEvent(ctx, events.EventAssetCreated, teamID, actorID, asset)
	return asset, nil
}

// UpdateAsset applies a partial update under the caller's team scope,
// pre-checking a code change against the rest of the team.
func (s *AssetService) UpdateAsset(ctx context.Context, teamID, actorID, assetID int64, changes storage.AssetChanges) (*domain.Asset, error) {
	if changes.Code != nil {
		exists, err := s.assets.AssetCodeExists(ctx, *changes.Code, assetID, teamID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, storage.ErrCodeTaken
		}
	}

	asset, err := s.assets.UpdateAsset(ctx, assetID, teamID, changes)
	if err != nil {
		return nil, err
	}

	s.publishAssetEvent(ctx, events.EventAssetUpdated, teamID, actorID, asset)
	return asset, nil
}

// DeleteAsset removes an asset under the caller's team scope.
func (s *AssetService) DeleteAsset(ctx context.Context, teamID, actorID, assetID int64) error {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}

	if err := s.assets.DeleteAsset(ctx, assetID, teamID); err != nil {
		return err
	}

	s.publishAssetEvent(ctx, events.EventAssetDeleted, teamID, actorID, asset)
	return nil
}

// CheckCode reports whether a code is already used by another asset in the
// team. The UI calls this before submitting create/update forms.
func (s *AssetService) CheckCode(ctx context.Context, teamID int64, code string, excludeID int64) (bool, error) {
	return s.assets.AssetCodeExists(ctx, code, excludeID, teamID)
}

func (s *AssetService) publishAssetEvent(ctx context.Context, eventType events.EventType, teamID, actorID int64, asset *domain.Asset) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TeamID:    teamID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload: events.AssetEventPayload{
			AssetID: asset.ID,
			Code:    asset.Code,
			Name:    asset.Name,
		},
	})
}
