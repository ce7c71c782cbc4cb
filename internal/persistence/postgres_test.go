package persistence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/config"
)

func TestConnectWithoutDSN(t *testing.T) {
	pg := NewPostgres(config.PostgresConfig{}, zap.NewNop())

	_, err := pg.Connect(context.Background())
	require.ErrorIs(t, err, ErrMissingDSN)
}

func TestConnectRejectsMalformedDSN(t *testing.T) {
	pg := NewPostgres(config.PostgresConfig{DSN: "://not-a-dsn"}, zap.NewNop())

	_, err := pg.Connect(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingDSN)
}

func TestPingBeforeConnect(t *testing.T) {
	pg := NewPostgres(config.PostgresConfig{}, zap.NewNop())

	require.Error(t, pg.Ping(context.Background()))
}

func TestTestConnectionSwallowsErrors(t *testing.T) {
	pg := NewPostgres(config.PostgresConfig{}, zap.NewNop())

	assert.False(t, pg.TestConnection(context.Background()))
}

func TestSchemaStatements(t *testing.T) {
	require.Len(t, schemaStatements, 5)
	for _, stmt := range schemaStatements {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}

	// teams must come before its dependents
	assert.Contains(t, schemaStatements[0], "CREATE TABLE IF NOT EXISTS teams")
	assert.Contains(t, schemaStatements[1], "REFERENCES teams(id) ON DELETE SET NULL")
	assert.Contains(t, schemaStatements[2], "REFERENCES teams(id) ON DELETE CASCADE")

	assets := schemaStatements[4]
	assert.Contains(t, assets, "CONSTRAINT assets_team_code_unique UNIQUE (team_id, code)")
	assert.Contains(t, assets, "DEFAULT 'Active'")
}

func TestIndexStatements(t *testing.T) {
	require.Len(t, indexStatements, 7)
	for _, stmt := range indexStatements {
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS"), stmt)
	}
}

func TestDefaultTeams(t *testing.T) {
	require.Len(t, defaultTeams, 3)
	names := make([]string, 0, len(defaultTeams))
	for _, team := range defaultTeams {
		names = append(names, team.name)
	}
	assert.Equal(t, []string{"TI", "Manutenção", "Operações"}, names)
}
