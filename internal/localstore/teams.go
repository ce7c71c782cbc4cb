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

// ListTeams returns every team in identity order.
func (s *Store) ListTeams(ctx context.Context) ([]domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	teams := []domain.Team{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketTeams)).ForEach(func(_, v []byte) error {
			var team domain.Team
			if err := unmarshalInto(v, &team); err != nil {
				return err
			}
			teams = append(teams, team)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeam fetches a team by identity.
func (s *Store) GetTeam(ctx context.Context, id int64) (*domain.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var team domain.Team
	err := s.db.View(func(tx *bbolt.Tx) error {
		found, err := getRecord(tx.Bucket([]byte(bucketTeams)), id, &team)
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
	return &team, nil
}

// CreateTeam inserts a team, stamping identity and timestamps.
func (s *Store) CreateTeam(ctx context.Context, team *domain.Team) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(team.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketTeams))
		id, err := nextID(bucket)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		team.ID = id
		team.CreatedAt = now
		team.UpdatedAt = now
		return putRecord(bucket, id, team)
	})
}
