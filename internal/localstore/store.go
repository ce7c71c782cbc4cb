// Package localstore implements the unified store interface on top of an
// embedded bbolt database. It mirrors the remote schema as one bucket per
// entity plus secondary-index buckets, with JSON-encoded records keyed by a
// bucket-generated numeric identity.
package localstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

// Entity buckets.
const (
	bucketTeams  = "teams"
	bucketUsers  = "users"
	bucketFloors = "floors"
	bucketRooms  = "rooms"
	bucketAssets = "assets"
)

// Index buckets. Email is a unique index keyed by the address; the rest are
// one-to-many scope indexes keyed scopeID+recordID.
const (
	idxUsersEmail = "idx_users_email"
	idxFloorsTeam = "idx_floors_team"
	idxRoomsFloor = "idx_rooms_floor"
	idxRoomsTeam  = "idx_rooms_team"
	idxAssetsTeam = "idx_assets_team"
)

var allBuckets = []string{
	bucketTeams, bucketUsers, bucketFloors, bucketRooms, bucketAssets,
	idxUsersEmail, idxFloorsTeam, idxRoomsFloor, idxRoomsTeam, idxAssetsTeam,
}

// Store provides a bbolt-backed implementation of storage.Store.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the embedded database at the provided path and
// ensures all buckets exist.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// itob returns an 8-byte big-endian encoding, so bucket iteration order
// matches identity order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}

// scopeKey builds a one-to-many index key: scope identity then record
// identity, both fixed width, so a scope's entries form one key range.
func scopeKey(scopeID, recordID int64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], uint64(scopeID))
	binary.BigEndian.PutUint64(key[8:], uint64(recordID))
	return key
}

func putRecord(b *bbolt.Bucket, id int64, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return b.Put(itob(id), payload)
}

func unmarshalInto(payload []byte, record any) error {
	if err := json.Unmarshal(payload, record); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	return nil
}

func getRecord(b *bbolt.Bucket, id int64, record any) (bool, error) {
	payload := b.Get(itob(id))
	if payload == nil {
		return false, nil
	}
	if err := json.Unmarshal(payload, record); err != nil {
		return false, fmt.Errorf("unmarshal record: %w", err)
	}
	return true, nil
}

// nextID allocates a monotonically increasing identity for the bucket.
func nextID(b *bbolt.Bucket) (int64, error) {
	seq, err := b.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return int64(seq), nil
}

// forEachInScope walks a one-to-many index range for scopeID, invoking fn
// with each referenced record identity.
func forEachInScope(idx *bbolt.Bucket, scopeID int64, fn func(recordID int64) error) error {
	prefix := itob(scopeID)
	c := idx.Cursor()
	for k, _ := c.Seek(prefix); k != nil && len(k) == 16 && string(k[:8]) == string(prefix); k, _ = c.Next() {
		if err := fn(btoi(k[8:])); err != nil {
			return err
		}
	}
	return nil
}
