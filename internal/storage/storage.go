package storage

import (
	"context"
	"errors"

	"github.com/spec-kit/inventory-service/internal/domain"
)

// Domain errors are expected business outcomes, distinct from transport
// failures. Callers branch with errors.Is; anything else coming out of a
// store is infrastructure. Messages are user-facing and therefore match the
// application's language.
var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrAccessDenied indicates a cross-team mutation attempt.
	ErrAccessDenied = errors.New("Acesso negado")
	// ErrCodeTaken indicates another asset in the team already uses the code.
	ErrCodeTaken = errors.New("código já cadastrado para esta equipe")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email já cadastrado")
)

// IsDomainError reports whether err is an expected business outcome rather
// than an infrastructure failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrCodeTaken) ||
		errors.Is(err, ErrEmailTaken)
}

// UserChanges carries a partial user update; nil fields are left unchanged.
type UserChanges struct {
	Name         *string
	PasswordHash *string
	Company      *string
	Photo        *string
	TeamID       *int64
}

// RoomChanges carries a partial room update; nil fields are left unchanged.
type RoomChanges struct {
	Name        *string
	Description *string
	FloorID     *int64
}

// AssetChanges carries a partial asset update; nil fields are left unchanged.
type AssetChanges struct {
	Name         *string
	Code         *string
	Category     *string
	Description  *string
	Value        *float64
	Status       *domain.AssetStatus
	FloorID      *int64
	RoomID       *int64
	Photo        *string
	Supplier     *string
	SerialNumber *string
}

// TeamStore persists teams, the root scope. Teams are never deleted here.
type TeamStore interface {
	ListTeams(ctx context.Context) ([]domain.Team, error)
	GetTeam(ctx context.Context, id int64) (*domain.Team, error)
	CreateTeam(ctx context.Context, team *domain.Team) error
}

// UserStore persists operator accounts. Users are never deleted here.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)
}

// FloorStore persists floors. ListFloors populates Rooms on every returned
// floor, restricted to the same team scope as the floors themselves.
type FloorStore interface {
	ListFloors(ctx context.Context, teamID *int64) ([]domain.Floor, error)
	GetFloor(ctx context.Context, id int64) (*domain.Floor, error)
	CreateFloor(ctx context.Context, floor *domain.Floor) error
}

// RoomStore persists rooms. Update and Delete verify the stored record's
// team before acting and return ErrAccessDenied on mismatch.
type RoomStore interface {
	CreateRoom(ctx context.Context, room *domain.Room) error
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	UpdateRoom(ctx context.Context, id, teamID int64, changes RoomChanges) (*domain.Room, error)
	DeleteRoom(ctx context.Context, id, teamID int64) error
}

// AssetStore persists assets with the same team-scope rules as rooms.
// AssetCodeExists reports whether some asset other than excludeID already
// uses code within teamID; excludeID zero means no exclusion.
type AssetStore interface {
	ListAssets(ctx context.Context, teamID *int64) ([]domain.Asset, error)
	CreateAsset(ctx context.Context, asset *domain.Asset) error
	GetAsset(ctx context.Context, id int64) (*domain.Asset, error)
	UpdateAsset(ctx context.Context, id, teamID int64, changes AssetChanges) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, id, teamID int64) error
	AssetCodeExists(ctx context.Context, code string, excludeID, teamID int64) (bool, error)
}

// Store is the full persistence surface. Both backends implement it; the
// active one is chosen once at configuration time and calling code never
// learns which it got.
type Store interface {
	TeamStore
	UserStore
	FloorStore
	RoomStore
	AssetStore
	Close() error
}
