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

// ListFloors returns floors with their rooms attached. With a team scope the
// floor set comes from the team index; without one every floor is returned.
// Rooms for the whole scope are loaded once and grouped by floor in memory,
// so the cost is two range scans regardless of floor count.
func (s *Store) ListFloors(ctx context.Context, teamID *int64) ([]domain.Floor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	floors := []domain.Floor{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		floorBucket := tx.Bucket([]byte(bucketFloors))

		if teamID != nil {
			err := forEachInScope(tx.Bucket([]byte(idxFloorsTeam)), *teamID, func(id int64) error {
				var floor domain.Floor
				found, err := getRecord(floorBucket, id, &floor)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("floor index points at missing record %d", id)
				}
				floors = append(floors, floor)
				return nil
			})
			if err != nil {
				return err
			}
		} else {
			err := floorBucket.ForEach(func(_, v []byte) error {
				var floor domain.Floor
				if err := unmarshalInto(v, &floor); err != nil {
					return err
				}
				floors = append(floors, floor)
				return nil
			})
			if err != nil {
				return err
			}
		}

		rooms, err := s.roomsForScope(tx, teamID)
		if err != nil {
			return err
		}

		grouped := make(map[int64][]domain.Room, len(floors))
		for _, room := range rooms {
			grouped[room.FloorID] = append(grouped[room.FloorID], room)
		}
		for i := range floors {
			floors[i].Rooms = grouped[floors[i].ID]
			if floors[i].Rooms == nil {
				floors[i].Rooms = []domain.Room{}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return floors, nil
}

// roomsForScope loads every room for the team, or all rooms when no team is
// given. Runs inside the caller's transaction.
func (s *Store) roomsForScope(tx *bbolt.Tx, teamID *int64) ([]domain.Room, error) {
	roomBucket := tx.Bucket([]byte(bucketRooms))
	rooms := []domain.Room{}

	if teamID != nil {
		err := forEachInScope(tx.Bucket([]byte(idxRoomsTeam)), *teamID, func(id int64) error {
			var room domain.Room
			found, err := getRecord(roomBucket, id, &room)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("room index points at missing record %d", id)
			}
			rooms = append(rooms, room)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return rooms, nil
	}

	err := roomBucket.ForEach(func(_, v []byte) error {
		var room domain.Room
		if err := unmarshalInto(v, &room); err != nil {
			return err
		}
		rooms = append(rooms, room)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetFloor fetches a floor by identity, without rooms.
func (s *Store) GetFloor(ctx context.Context, id int64) (*domain.Floor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var floor domain.Floor
	err := s.db.View(func(tx *bbolt.Tx) error {
		found, err := getRecord(tx.Bucket([]byte(bucketFloors)), id, &floor)
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
	return &floor, nil
}

// CreateFloor inserts a floor, stamping identity and timestamps and
// maintaining the team index.
func (s *Store) CreateFloor(ctx context.Context, floor *domain.Floor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(floor.Name) == "" {
		return fmt.Errorf("floor name is required")
	}
	if floor.TeamID == 0 {
		return fmt.Errorf("floor team is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketFloors))
		id, err := nextID(bucket)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		floor.ID = id
		floor.Rooms = nil
		floor.CreatedAt = now
		floor.UpdatedAt = now

		if err := putRecord(bucket, id, floor); err != nil {
			return err
		}
		return tx.Bucket([]byte(idxFloorsTeam)).Put(scopeKey(floor.TeamID, id), itob(id))
	})
}
