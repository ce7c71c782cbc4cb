package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

const assetColumns = `id, name, code, category, description, value, status,
        floor_id, room_id, photo, supplier, serial_number, team_id, created_by,
        created_at, updated_at`

// ListAssets returns assets in identity order, team-filtered when a scope is
// given and a full scan otherwise.
func (s *Store) ListAssets(ctx context.Context, teamID *int64) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets`
	args := []any{}
	if teamID != nil {
		query += ` WHERE team_id=$1`
		args = append(args, *teamID)
	}
	query += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Code,
			&asset.Category,
			&asset.Description,
			&asset.Value,
			&asset.Status,
			&asset.FloorID,
			&asset.RoomID,
			&asset.Photo,
			&asset.Supplier,
			&asset.SerialNumber,
			&asset.TeamID,
			&asset.CreatedByID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// CreateAsset inserts an asset, defaulting the status. The UNIQUE
// (team_id, code) constraint is the authority on code uniqueness: a
// concurrent duplicate that slipped past any pre-check still comes back as
// ErrCodeTaken here.
func (s *Store) CreateAsset(ctx context.Context, asset *domain.Asset) error {
	if asset.Status == "" {
		asset.Status = domain.AssetStatusActive
	}
	const query = `
        INSERT INTO assets (name, code, category, description, value, status,
            floor_id, room_id, photo, supplier, serial_number, team_id, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return mapError(s.pool.QueryRow(ctx, query,
		asset.Name,
		asset.Code,
		asset.Category,
		asset.Description,
		asset.Value,
		asset.Status,
		asset.FloorID,
		asset.RoomID,
		asset.Photo,
		asset.Supplier,
		asset.SerialNumber,
		asset.TeamID,
		asset.CreatedByID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt))
}

// GetAsset fetches an asset by identity.
func (s *Store) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	const query = `SELECT ` + assetColumns + ` FROM assets WHERE id=$1`
	var asset domain.Asset
	if err := s.pool.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Code,
		&asset.Category,
		&asset.Description,
		&asset.Value,
		&asset.Status,
		&asset.FloorID,
		&asset.RoomID,
		&asset.Photo,
		&asset.Supplier,
		&asset.SerialNumber,
		&asset.TeamID,
		&asset.CreatedByID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &asset, nil
}

// UpdateAsset merges the non-nil change fields under the team guard,
// refreshing updated_at. A code collision surfaces as ErrCodeTaken from the
// unique constraint.
func (s *Store) UpdateAsset(ctx context.Context, id, teamID int64, changes storage.AssetChanges) (*domain.Asset, error) {
	const query = `
        UPDATE assets SET
            name=COALESCE($1, name),
            code=COALESCE($2, code),
            category=COALESCE($3, category),
            description=COALESCE($4, description),
            value=COALESCE($5, value),
            status=COALESCE($6, status),
            floor_id=COALESCE($7, floor_id),
            room_id=COALESCE($8, room_id),
            photo=COALESCE($9, photo),
            supplier=COALESCE($10, supplier),
            serial_number=COALESCE($11, serial_number),
            updated_at=NOW()
        WHERE id=$12 AND team_id=$13
        RETURNING ` + assetColumns
	var asset domain.Asset
	err := s.pool.QueryRow(ctx, query,
		changes.Name,
		changes.Code,
		changes.Category,
		changes.Description,
		changes.Value,
		changes.Status,
		changes.FloorID,
		changes.RoomID,
		changes.Photo,
		changes.Supplier,
		changes.SerialNumber,
		id,
		teamID,
	).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Code,
		&asset.Category,
		&asset.Description,
		&asset.Value,
		&asset.Status,
		&asset.FloorID,
		&asset.RoomID,
		&asset.Photo,
		&asset.Supplier,
		&asset.SerialNumber,
		&asset.TeamID,
		&asset.CreatedByID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, storage.ErrNotFound) {
			return nil, s.assetScopeError(ctx, id)
		}
		return nil, mapped
	}
	return &asset, nil
}

// DeleteAsset removes an asset under the same team guard as UpdateAsset.
func (s *Store) DeleteAsset(ctx context.Context, id, teamID int64) error {
	const query = `DELETE FROM assets WHERE id=$1 AND team_id=$2`
	cmd, err := s.pool.Exec(ctx, query, id, teamID)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return s.assetScopeError(ctx, id)
	}
	return nil
}

// AssetCodeExists reports whether some asset other than excludeID already
// uses code within teamID.
func (s *Store) AssetCodeExists(ctx context.Context, code string, excludeID, teamID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM assets WHERE team_id=$1 AND code=$2 AND id<>$3
        )`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, teamID, code, excludeID).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (s *Store) assetScopeError(ctx context.Context, id int64) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM assets WHERE id=$1)`, id).Scan(&exists); err != nil {
		return mapError(err)
	}
	if exists {
		return storage.ErrAccessDenied
	}
	return storage.ErrNotFound
}
