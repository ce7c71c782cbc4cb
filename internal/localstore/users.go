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

// CreateUser inserts a user, enforcing email uniqueness through the email
// index inside the same write transaction as the insert.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(user.Email) == "" {
		return fmt.Errorf("user email is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		emailIdx := tx.Bucket([]byte(idxUsersEmail))
		if emailIdx.Get([]byte(user.Email)) != nil {
			return storage.ErrEmailTaken
		}

		bucket := tx.Bucket([]byte(bucketUsers))
		id, err := nextID(bucket)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user.ID = id
		user.CreatedAt = now
		user.UpdatedAt = now

		if err := putRecord(bucket, id, user); err != nil {
			return err
		}
		return emailIdx.Put([]byte(user.Email), itob(id))
	})
}

// GetUser fetches a user by identity.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		found, err := getRecord(tx.Bucket([]byte(bucketUsers)), id, &user)
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
	return &user, nil
}

// GetUserByEmail resolves a user through the email index. A missing email is
// an expected outcome and surfaces as ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		ref := tx.Bucket([]byte(idxUsersEmail)).Get([]byte(email))
		if ref == nil {
			return storage.ErrNotFound
		}
		found, err := getRecord(tx.Bucket([]byte(bucketUsers)), btoi(ref), &user)
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
	return &user, nil
}

// UpdateUser merges the non-nil change fields over the stored record and
// refreshes UpdatedAt. Missing identity surfaces as ErrNotFound, never as a
// transport failure.
func (s *Store) UpdateUser(ctx context.Context, id int64, changes storage.UserChanges) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketUsers))
		found, err := getRecord(bucket, id, &user)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
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

		return putRecord(bucket, id, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
