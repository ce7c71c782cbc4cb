package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func ptr[T any](v T) *T { return &v }

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestTeamLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &domain.Team{Name: "TI", Description: "Tecnologia da Informação"}
	require.NoError(t, store.CreateTeam(ctx, team))
	require.Equal(t, int64(1), team.ID)
	require.False(t, team.CreatedAt.IsZero())

	got, err := store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "TI", got.Name)

	require.NoError(t, store.CreateTeam(ctx, &domain.Team{Name: "Manutenção"}))

	teams, err := store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "TI", teams[0].Name)
	assert.Equal(t, "Manutenção", teams[1].Name)
}

func TestCreateTeamRequiresName(t *testing.T) {
	store := newTestStore(t)

	err := store.CreateTeam(context.Background(), &domain.Team{Name: "  "})
	require.Error(t, err)
	assert.False(t, storage.IsDomainError(err))
}

func TestGetTeamNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTeam(context.Background(), 99)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserEmailUniqueness(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "h1"}
	require.NoError(t, store.CreateUser(ctx, user))
	require.Equal(t, int64(1), user.ID)

	err := store.CreateUser(ctx, &domain.User{Name: "Outra Ana", Email: "ana@example.com"})
	require.ErrorIs(t, err, storage.ErrEmailTaken)

	got, err := store.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = store.GetUserByEmail(ctx, "ninguem@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateUserMergesPartialChanges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	team := &domain.Team{Name: "TI"}
	require.NoError(t, store.CreateTeam(ctx, team))

	user := &domain.User{Name: "Bruno", Email: "bruno@example.com", Company: "Acme"}
	require.NoError(t, store.CreateUser(ctx, user))

	updated, err := store.UpdateUser(ctx, user.ID, storage.UserChanges{
		Name:   ptr("Bruno Silva"),
		TeamID: ptr(team.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bruno Silva", updated.Name)
	assert.Equal(t, "Acme", updated.Company)
	require.NotNil(t, updated.TeamID)
	assert.Equal(t, team.ID, *updated.TeamID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))
}

func TestUpdateUserNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateUser(context.Background(), 42, storage.UserChanges{Name: ptr("x")})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListFloorsGroupsRoomsPerTeam(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	ops := &domain.Team{Name: "Operações"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	require.NoError(t, store.CreateTeam(ctx, ops))

	first := &domain.Floor{Name: "1º Andar", TeamID: ti.ID}
	second := &domain.Floor{Name: "2º Andar", TeamID: ti.ID}
	other := &domain.Floor{Name: "Térreo", TeamID: ops.ID}
	require.NoError(t, store.CreateFloor(ctx, first))
	require.NoError(t, store.CreateFloor(ctx, second))
	require.NoError(t, store.CreateFloor(ctx, other))

	require.NoError(t, store.CreateRoom(ctx, &domain.Room{Name: "Sala A", FloorID: first.ID, TeamID: ti.ID}))
	require.NoError(t, store.CreateRoom(ctx, &domain.Room{Name: "Sala B", FloorID: first.ID, TeamID: ti.ID}))
	require.NoError(t, store.CreateRoom(ctx, &domain.Room{Name: "Recepção", FloorID: other.ID, TeamID: ops.ID}))

	floors, err := store.ListFloors(ctx, &ti.ID)
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, "1º Andar", floors[0].Name)
	require.Len(t, floors[0].Rooms, 2)
	assert.Equal(t, "Sala A", floors[0].Rooms[0].Name)
	assert.Equal(t, "Sala B", floors[0].Rooms[1].Name)
	require.NotNil(t, floors[1].Rooms)
	assert.Empty(t, floors[1].Rooms)

	all, err := store.ListFloors(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateRoomDeniedAcrossTeams(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	ops := &domain.Team{Name: "Operações"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	require.NoError(t, store.CreateTeam(ctx, ops))

	floor := &domain.Floor{Name: "1º Andar", TeamID: ti.ID}
	require.NoError(t, store.CreateFloor(ctx, floor))
	room := &domain.Room{Name: "Sala A", FloorID: floor.ID, TeamID: ti.ID}
	require.NoError(t, store.CreateRoom(ctx, room))

	_, err := store.UpdateRoom(ctx, room.ID, ops.ID, storage.RoomChanges{Name: ptr("Invadida")})
	require.ErrorIs(t, err, storage.ErrAccessDenied)
	require.EqualError(t, err, "Acesso negado")

	err = store.DeleteRoom(ctx, room.ID, ops.ID)
	require.ErrorIs(t, err, storage.ErrAccessDenied)

	// the rejected calls must not have touched the record
	got, err := store.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sala A", got.Name)
	assert.Equal(t, room.UpdatedAt, got.UpdatedAt)
}

func TestUpdateRoomMovesFloorIndex(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	require.NoError(t, store.CreateTeam(ctx, ti))

	first := &domain.Floor{Name: "1º Andar", TeamID: ti.ID}
	second := &domain.Floor{Name: "2º Andar", TeamID: ti.ID}
	require.NoError(t, store.CreateFloor(ctx, first))
	require.NoError(t, store.CreateFloor(ctx, second))

	room := &domain.Room{Name: "Sala A", FloorID: first.ID, TeamID: ti.ID}
	require.NoError(t, store.CreateRoom(ctx, room))

	updated, err := store.UpdateRoom(ctx, room.ID, ti.ID, storage.RoomChanges{FloorID: &second.ID})
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.FloorID)

	floors, err := store.ListFloors(ctx, &ti.ID)
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Empty(t, floors[0].Rooms)
	require.Len(t, floors[1].Rooms, 1)
	assert.Equal(t, "Sala A", floors[1].Rooms[0].Name)
}

func TestDeleteRoomClearsIndexes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	floor := &domain.Floor{Name: "1º Andar", TeamID: ti.ID}
	require.NoError(t, store.CreateFloor(ctx, floor))
	room := &domain.Room{Name: "Sala A", FloorID: floor.ID, TeamID: ti.ID}
	require.NoError(t, store.CreateRoom(ctx, room))

	require.NoError(t, store.DeleteRoom(ctx, room.ID, ti.ID))

	_, err := store.GetRoom(ctx, room.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	floors, err := store.ListFloors(ctx, &ti.ID)
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Empty(t, floors[0].Rooms)

	err = store.DeleteRoom(ctx, room.ID, ti.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAssetCodeUniquePerTeam(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	ops := &domain.Team{Name: "Operações"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	require.NoError(t, store.CreateTeam(ctx, ops))

	notebook := &domain.Asset{Name: "Notebook", Code: "NB-001", TeamID: ti.ID}
	require.NoError(t, store.CreateAsset(ctx, notebook))
	assert.Equal(t, domain.AssetStatusActive, notebook.Status)

	err := store.CreateAsset(ctx, &domain.Asset{Name: "Outro Notebook", Code: "NB-001", TeamID: ti.ID})
	require.ErrorIs(t, err, storage.ErrCodeTaken)

	// the same code in another team is a different namespace
	require.NoError(t, store.CreateAsset(ctx, &domain.Asset{Name: "Notebook Ops", Code: "NB-001", TeamID: ops.ID}))

	taken, err := store.AssetCodeExists(ctx, "NB-001", 0, ti.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = store.AssetCodeExists(ctx, "NB-001", notebook.ID, ti.ID)
	require.NoError(t, err)
	assert.False(t, taken, "the asset itself is excluded")

	taken, err = store.AssetCodeExists(ctx, "NB-002", 0, ti.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateAssetRechecksCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	require.NoError(t, store.CreateTeam(ctx, ti))

	first := &domain.Asset{Name: "Notebook", Code: "NB-001", TeamID: ti.ID}
	second := &domain.Asset{Name: "Monitor", Code: "MN-001", TeamID: ti.ID}
	require.NoError(t, store.CreateAsset(ctx, first))
	require.NoError(t, store.CreateAsset(ctx, second))

	_, err := store.UpdateAsset(ctx, second.ID, ti.ID, storage.AssetChanges{Code: ptr("NB-001")})
	require.ErrorIs(t, err, storage.ErrCodeTaken)

	// keeping its own code is not a conflict
	updated, err := store.UpdateAsset(ctx, second.ID, ti.ID, storage.AssetChanges{
		Code:  ptr("MN-001"),
		Value: ptr(1200.50),
	})
	require.NoError(t, err)
	assert.Equal(t, "MN-001", updated.Code)
	assert.Equal(t, 1200.50, updated.Value)
}

func TestAssetScopeAndMerge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	ops := &domain.Team{Name: "Operações"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	require.NoError(t, store.CreateTeam(ctx, ops))

	asset := &domain.Asset{Name: "Notebook", Code: "NB-001", Category: "Informática", TeamID: ti.ID}
	require.NoError(t, store.CreateAsset(ctx, asset))

	_, err := store.UpdateAsset(ctx, asset.ID, ops.ID, storage.AssetChanges{Name: ptr("Roubado")})
	require.ErrorIs(t, err, storage.ErrAccessDenied)

	err = store.DeleteAsset(ctx, asset.ID, ops.ID)
	require.ErrorIs(t, err, storage.ErrAccessDenied)

	updated, err := store.UpdateAsset(ctx, asset.ID, ti.ID, storage.AssetChanges{
		Status:       ptr(domain.AssetStatusMaintenance),
		SerialNumber: ptr("SN-9981"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusMaintenance, updated.Status)
	assert.Equal(t, "SN-9981", updated.SerialNumber)
	assert.Equal(t, "Informática", updated.Category)

	_, err = store.UpdateAsset(ctx, 999, ti.ID, storage.AssetChanges{})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListAssetsScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	ops := &domain.Team{Name: "Operações"}
	require.NoError(t, store.CreateTeam(ctx, ti))
	require.NoError(t, store.CreateTeam(ctx, ops))

	require.NoError(t, store.CreateAsset(ctx, &domain.Asset{Name: "Notebook", Code: "NB-001", TeamID: ti.ID}))
	require.NoError(t, store.CreateAsset(ctx, &domain.Asset{Name: "Impressora", Code: "IM-001", TeamID: ti.ID}))
	require.NoError(t, store.CreateAsset(ctx, &domain.Asset{Name: "Empilhadeira", Code: "EM-001", TeamID: ops.ID}))

	scoped, err := store.ListAssets(ctx, &ti.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "Notebook", scoped[0].Name)

	all, err := store.ListAssets(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteAssetRemovesFromListing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ti := &domain.Team{Name: "TI"}
	require.NoError(t, store.CreateTeam(ctx, ti))

	asset := &domain.Asset{Name: "Notebook", Code: "NB-001", TeamID: ti.ID}
	require.NoError(t, store.CreateAsset(ctx, asset))
	require.NoError(t, store.DeleteAsset(ctx, asset.ID, ti.ID))

	_, err := store.GetAsset(ctx, asset.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)

	scoped, err := store.ListAssets(ctx, &ti.ID)
	require.NoError(t, err)
	assert.Empty(t, scoped)

	// the code is free again for the team
	require.NoError(t, store.CreateAsset(ctx, &domain.Asset{Name: "Notebook Novo", Code: "NB-001", TeamID: ti.ID}))
}

func TestStoreRespectsCancelledContext(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListTeams(ctx)
	require.ErrorIs(t, err, context.Canceled)

	err = store.CreateAsset(ctx, &domain.Asset{Name: "Notebook", Code: "NB-001", TeamID: 1})
	require.ErrorIs(t, err, context.Canceled)
}
