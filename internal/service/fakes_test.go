package service

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/storage"
)

func ptr[T any](v T) *T { return &v }

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

// fakeUserStore is an in-memory storage.UserStore.
type fakeUserStore struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*domain.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return storage.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) UpdateUser(_ context.Context, id int64, changes storage.UserChanges) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.PasswordHash != nil {
		user.PasswordHash = *changes.PasswordHash
	}
	if changes.Company != nil {
		user.Company = *changes.Company
	}
	if changes.Photo != nil {
		user.Photo = *changes.Photo
	}
	if changes.TeamID != nil {
		user.TeamID = changes.TeamID
	}
	user.UpdatedAt = time.Now().UTC()
	copied := *user
	return &copied, nil
}

// fakeInventoryStore is an in-memory storage.FloorStore, RoomStore and
// AssetStore with the same sentinel behavior as the real backends.
type fakeInventoryStore struct {
	nextFloorID int64
	nextRoomID  int64
	nextAssetID int64
	floors      map[int64]*domain.Floor
	rooms       map[int64]*domain.Room
	assets      map[int64]*domain.Asset
}

func newFakeInventoryStore() *fakeInventoryStore {
	return &fakeInventoryStore{
		floors: map[int64]*domain.Floor{},
		rooms:  map[int64]*domain.Room{},
		assets: map[int64]*domain.Asset{},
	}
}

func (f *fakeInventoryStore) ListFloors(_ context.Context, teamID *int64) ([]domain.Floor, error) {
	floors := []domain.Floor{}
	for _, floor := range f.floors {
		if teamID != nil && floor.TeamID != *teamID {
			continue
		}
		copied := *floor
		copied.Rooms = []domain.Room{}
		for _, room := range f.rooms {
			if room.FloorID == floor.ID {
				copied.Rooms = append(copied.Rooms, *room)
			}
		}
		floors = append(floors, copied)
	}
	return floors, nil
}

func (f *fakeInventoryStore) GetFloor(_ context.Context, id int64) (*domain.Floor, error) {
	floor, ok := f.floors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *floor
	return &copied, nil
}

func (f *fakeInventoryStore) CreateFloor(_ context.Context, floor *domain.Floor) error {
	f.nextFloorID++
	floor.ID = f.nextFloorID
	floor.CreatedAt = time.Now().UTC()
	floor.UpdatedAt = floor.CreatedAt
	stored := *floor
	f.floors[floor.ID] = &stored
	return nil
}

func (f *fakeInventoryStore) CreateRoom(_ context.Context, room *domain.Room) error {
	f.nextRoomID++
	room.ID = f.nextRoomID
	room.CreatedAt = time.Now().UTC()
	room.UpdatedAt = room.CreatedAt
	stored := *room
	f.rooms[room.ID] = &stored
	return nil
}

func (f *fakeInventoryStore) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *room
	return &copied, nil
}

func (f *fakeInventoryStore) UpdateRoom(_ context.Context, id, teamID int64, changes storage.RoomChanges) (*domain.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if room.TeamID != teamID {
		return nil, storage.ErrAccessDenied
	}
	if changes.Name != nil {
		room.Name = *changes.Name
	}
	if changes.Description != nil {
		room.Description = *changes.Description
	}
	if changes.FloorID != nil {
		room.FloorID = *changes.FloorID
	}
	room.UpdatedAt = time.Now().UTC()
	copied := *room
	return &copied, nil
}

func (f *fakeInventoryStore) DeleteRoom(_ context.Context, id, teamID int64) error {
	room, ok := f.rooms[id]
	if !ok {
		return storage.ErrNotFound
	}
	if room.TeamID != teamID {
		return storage.ErrAccessDenied
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeInventoryStore) ListAssets(_ context.Context, teamID *int64) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	for _, asset := range f.assets {
		if teamID != nil && asset.TeamID != *teamID {
			continue
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

func (f *fakeInventoryStore) CreateAsset(_ context.Context, asset *domain.Asset) error {
	taken, _ := f.AssetCodeExists(context.Background(), asset.Code, 0, asset.TeamID)
	if taken {
		return storage.ErrCodeTaken
	}
	f.nextAssetID++
	asset.ID = f.nextAssetID
	if asset.Status == "" {
		asset.Status = domain.AssetStatusActive
	}
	asset.CreatedAt = time.Now().UTC()
	asset.UpdatedAt = asset.CreatedAt
	stored := *asset
	f.assets[asset.ID] = &stored
	return nil
}

func (f *fakeInventoryStore) GetAsset(_ context.Context, id int64) (*domain.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *asset
	return &copied, nil
}

func (f *fakeInventoryStore) UpdateAsset(_ context.Context, id, teamID int64, changes storage.AssetChanges) (*domain.Asset, error) {
	asset, ok := f.assets[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if asset.TeamID != teamID {
		return nil, storage.ErrAccessDenied
	}
	if changes.Name != nil {
		asset.Name = *changes.Name
	}
	if changes.Code != nil {
		asset.Code = *changes.Code
	}
	if changes.Value != nil {
		asset.Value = *changes.Value
	}
	if changes.Status != nil {
		asset.Status = *changes.Status
	}
	asset.UpdatedAt = time.Now().UTC()
	copied := *asset
	return &copied, nil
}

func (f *fakeInventoryStore) DeleteAsset(_ context.Context, id, teamID int64) error {
	asset, ok := f.assets[id]
	if !ok {
		return storage.ErrNotFound
	}
	if asset.TeamID != teamID {
		return storage.ErrAccessDenied
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeInventoryStore) AssetCodeExists(_ context.Context, code string, excludeID, teamID int64) (bool, error) {
	for _, asset := range f.assets {
		if asset.ID == excludeID {
			continue
		}
		if asset.TeamID == teamID && asset.Code == code {
			return true, nil
		}
	}
	return false, nil
}
