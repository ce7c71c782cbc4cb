package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// schemaStatements creates the five entity tables. Order matters: children
// reference parents. All statements are IF NOT EXISTS so repeated
// initialization is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		photo TEXT NOT NULL DEFAULT '',
		team_id BIGINT REFERENCES teams(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS floors (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		floor_id BIGINT NOT NULL REFERENCES floors(id) ON DELETE CASCADE,
		team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS assets (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		value NUMERIC(14,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Active',
		floor_id BIGINT REFERENCES floors(id) ON DELETE SET NULL,
		room_id BIGINT REFERENCES rooms(id) ON DELETE SET NULL,
		photo TEXT NOT NULL DEFAULT '',
		supplier TEXT NOT NULL DEFAULT '',
		serial_number TEXT NOT NULL DEFAULT '',
		team_id BIGINT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		created_by BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT assets_team_code_unique UNIQUE (team_id, code)
	)`,
}

// indexStatements are the seven supporting lookup indexes.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
	`CREATE INDEX IF NOT EXISTS idx_users_team ON users (team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_floors_team ON floors (team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_floor ON rooms (floor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_rooms_team ON rooms (team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assets_team ON assets (team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assets_status ON assets (status)`,
}

// defaultTeams are seeded once, when the teams table is observed empty.
var defaultTeams = []struct {
	name        string
	description string
}{
	{"TI", "Equipamentos de tecnologia da informação"},
	{"Manutenção", "Equipamentos de manutenção predial"},
	{"Operações", "Equipamentos operacionais"},
}

// InitializeSchema provisions tables, seed teams and indexes. Safe to call
// repeatedly. The emptiness check and the seed inserts share one
// transaction, but two processes initializing concurrently can still both
// observe an empty table and double-seed; single-writer deployments are
// assumed for startup.
func InitializeSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	if err := seedDefaultTeams(ctx, pool, logger); err != nil {
		return err
	}

	for _, stmt := range indexStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	logger.Info("schema initialized",
		zap.Int("tables", len(schemaStatements)),
		zap.Int("indexes", len(indexStatements)))
	return nil
}

func seedDefaultTeams(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count); err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, team := range defaultTeams {
			if _, err := tx.Exec(ctx,
				`INSERT INTO teams (name, description) VALUES ($1, $2)`,
				team.name, team.description,
			); err != nil {
				return fmt.Errorf("seed team %s: %w", team.name, err)
			}
		}
		logger.Info("seeded default teams", zap.Int("count", len(defaultTeams)))
		return nil
	})
}
