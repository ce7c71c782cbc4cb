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

// CreateRoom inserts a room, stamping identity and timestamps and
// maintaining the floor and team indexes. The caller is responsible for
// setting TeamID to the parent floor's team.
func (s *Store) CreateRoom(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(room.Name) == "" {
		return fmt.Errorf("room name is required")
	}
	if room.FloorID == 0 || room.TeamID == 0 {
		return fmt.Errorf("room floor and team are required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketRooms))
		id, err := nextID(bucket)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		room.ID = id
		room.CreatedAt = now
		room.UpdatedAt = now

		if err := putRecord(bucket, id, room); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(idxRoomsFloor)).Put(scopeKey(room.FloorID, id), itob(id)); err != nil {
			return err
		}
		return tx.Bucket([]byte(idxRoomsTeam)).Put(scopeKey(room.TeamID, id), itob(id))
	})
}

// GetRoom fetches a room by identity.
func (s *Store) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room domain.Room
	err := s.db.View(func(tx *bbolt.Tx) error {
		found, err := getRecord(tx.Bucket([]byte(bucketRooms)), id, &room)
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
	return &room, nil
}

// UpdateRoom reads the stored record, rejects cross-team access, merges the
// non-nil change fields and refreshes UpdatedAt. Moving the room to another
// floor rewrites the floor index entry. The record is untouched on any
// rejection: the read, the check and the write share one transaction.
func (s *Store) UpdateRoom(ctx context.Context, id, teamID int64, changes storage.RoomChanges) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room domain.Room
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketRooms))
		found, err := getRecord(bucket, id, &room)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		if room.TeamID != teamID {
			return storage.ErrAccessDenied
		}

		if changes.Name != nil {
			room.Name = *changes.Name
		}
		if changes.Description != nil {
			room.Description = *changes.Description
		}
		if changes.FloorID != nil && *changes.FloorID != room.FloorID {
			floorIdx := tx.Bucket([]byte(idxRoomsFloor))
			if err := floorIdx.Delete(scopeKey(room.FloorID, id)); err != nil {
				return err
			}
			if err := floorIdx.Put(scopeKey(*changes.FloorID, id), itob(id)); err != nil {
				return err
			}
			room.FloorID = *changes.FloorID
		}
		room.UpdatedAt = time.Now().UTC()

		return putRecord(bucket, id, &room)
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteRoom removes a room after the same team-scope check as UpdateRoom,
// clearing both index entries.
func (s *Store) DeleteRoom(ctx context.Context, id, teamID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketRooms))
		var room domain.Room
		found, err := getRecord(bucket, id, &room)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		if room.TeamID != teamID {
			return storage.ErrAccessDenied
		}

		if err := tx.Bucket([]byte(idxRoomsFloor)).Delete(scopeKey(room.FloorID, id)); err != nil {
			return err
		}
		if err := tx.Bucket([]byte(idxRoomsTeam)).Delete(scopeKey(room.TeamID, id)); err != nil {
			return err
		}
		return bucket.Delete(itob(id))
	})
}
