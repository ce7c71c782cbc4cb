package localstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/storage"
)

// ListAssets returns assets in identity order, restricted to the team index
// range when a scope is given and a full scan otherwise.
func (s *Store) ListAssets(ctx context.Context, teamID *int64) ([]domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assets := []domain.Asset{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketAssets))

		if teamID != nil {
			return forEachInScope(tx.Bucket([]byte(idxAssetsTeam)), *teamID, func(id int64) error {
				var asset domain.Asset
				found, err := getRecord(bucket, id, &asset)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("asset index points at missing record %d", id)
				}
				assets = append(assets, asset)
				return nil
			})
		}

		return bucket.ForEach(func(_, v []byte) error {
			var asset domain.Asset
			if err := unmarshalInto(v, &asset); err != nil {
				return err
			}
			assets = append(assets, asset)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// CreateAsset inserts an asset, stamping identity and timestamps and
// defaulting the status. The per-team code uniqueness scan runs inside the
// same write transaction as the insert, so a duplicate cannot slip in
// between check and write.
func (s *Store) CreateAsset(ctx context.Context, asset *domain.Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(asset.Name) == "" || strings.TrimSpace(asset.Code) == "" {
		return fmt.Errorf("asset name and code are required")
	}
	if asset.TeamID == 0 {
		return fmt.Errorf("asset team is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		taken, err := codeExistsInTx(tx, asset.Code, 0, asset.TeamID)
		if err != nil {
			return err
		}
		if taken {
			return storage.ErrCodeTaken
		}

		bucket := tx.Bucket([]byte(bucketAssets))
		id, err := nextID(bucket)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		asset.ID = id
		if asset.Status == "" {
			asset.Status = domain.AssetStatusActive
		}
		asset.CreatedAt = now
		asset.UpdatedAt = now

		if err := putRecord(bucket, id, asset); err != nil {
			return err
		}
		return tx.Bucket([]byte(idxAssetsTeam)).Put(scopeKey(asset.TeamID, id), itob(id))
	})
}

// GetAsset fetches an asset by identity.
func (s *Store) GetAsset(ctx context.Context, id int64) (*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var asset domain.Asset
	err := s.db.View(func(tx *bbolt.Tx) error {
		found, err := getRecord(tx.Bucket([]byte(bucketAssets)), id, &asset)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset reads the stored record, rejects cross-team access, merges the
// non-nil change fields and refreshes UpdatedAt. A code change re-runs the
// uniqueness scan excluding the asset itself.
func (s *Store) UpdateAsset(ctx context.Context, id, teamID int64, changes storage.AssetChanges) (*domain.Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var asset domain.Asset
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketAssets))
		found, err := getRecord(bucket, id, &asset)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		if asset.TeamID != teamID {
			return storage.ErrAccessDenied
		}

		if changes.Code != nil && *changes.Code != asset.Code {
			taken, err := codeExistsInTx(tx, *changes.Code, id, teamID)
			if err != nil {
				return err
			}
			if taken {
				return storage.ErrCodeTaken
			}
			asset.Code = *changes.Code
		}
		if changes.Name != nil {
			asset.Name = *changes.Name
		}
		if changes.Category != nil {
			asset.Category = *changes.Category
		}
		if changes.Description != nil {
			asset.Description = *changes.Description
		}
		if changes.Value != nil {
			asset.Value = *changes.Value
		}
		if changes.Status != nil {
			asset.Status = *changes.Status
		}
		if changes.FloorID != nil {
			asset.FloorID = changes.FloorID
		}
		if changes.RoomID != nil {
			asset.RoomID = changes.RoomID
		}
		if changes.Photo != nil {
			asset.Photo = *changes.Photo
		}
		if changes.Supplier != nil {
			asset.Supplier = *changes.Supplier
		}
		if changes.SerialNumber != nil {
			asset.SerialNumber = *changes.SerialNumber
		}
		asset.UpdatedAt = time.Now().UTC()

		return putRecord(bucket, id, &asset)
	})
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset after the team-scope check, clearing the team
// index entry.
func (s *Store) DeleteAsset(ctx context.Context, id, teamID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketAssets))
		var asset domain.Asset
		found, err := getRecord(bucket, id, &asset)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		if asset.TeamID != teamID {
			return storage.ErrAccessDenied
		}

		if err := tx.Bucket([]byte(idxAssetsTeam)).Delete(scopeKey(asset.TeamID, id)); err != nil {
			return err
		}
		return bucket.Delete(itob(id))
	})
}

// AssetCodeExists reports whether some asset other than excludeID already
// uses code within teamID. Codes are team-scoped: the scan never leaves the
// team's index range, so other teams reusing the code do not count.
func (s *Store) AssetCodeExists(ctx context.Context, code string, excludeID, teamID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		exists, err = codeExistsInTx(tx, code, excludeID, teamID)
		return err
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// codeExistsInTx walks the team's asset index comparing codes. Linear in the
// team's asset count.
func codeExistsInTx(tx *bbolt.Tx, code string, excludeID, teamID int64) (bool, error) {
	bucket := tx.Bucket([]byte(bucketAssets))
	found := false
	err := forEachInScope(tx.Bucket([]byte(idxAssetsTeam)), teamID, func(id int64) error {
		if found || id == excludeID {
			return nil
		}
		var asset domain.Asset
		ok, err := getRecord(bucket, id, &asset)
		if err != nil {
			return err
		}
		if ok && asset.Code == code {
			found = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}
