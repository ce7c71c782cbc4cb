package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/config"
)

// probeTimeout bounds the connection validation query.
const probeTimeout = 10 * time.Second

var (
	// ErrMissingDSN means POSTGRES_DSN was absent at the first connection
	// attempt. Unrecoverable without operator intervention.
	ErrMissingDSN = errors.New("POSTGRES_DSN is not configured")
	// ErrConnectTimeout means the validation probe did not answer in time.
	ErrConnectTimeout = errors.New("postgres connection probe timed out")
)

// Postgres manages a single shared pgx connection pool. The pool is
// established lazily on first Connect and cached for the process lifetime;
// any failure along the way discards the partial handle so the next call
// retries from scratch. There is no reconnect-on-drop: a query failing after
// a successful Connect is the caller's problem.
type Postgres struct {
	cfg    config.PostgresConfig
	logger *zap.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgres prepares the manager without touching the network.
func NewPostgres(cfg config.PostgresConfig, logger *zap.Logger) *Postgres {
	return &Postgres{cfg: cfg, logger: logger}
}

// Connect returns the shared pool, establishing and validating it on first
// use. Idempotent: concurrent callers share one handle.
func (p *Postgres) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}

	if p.cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	poolCfg, err := pgxpool.ParseConfig(p.cfg.DSN)
	if err != nil {
		return nil, err
	}
	if p.cfg.MaxConns > 0 {
		poolCfg.MaxConns = p.cfg.MaxConns
	}
	if p.cfg.MinConns > 0 {
		poolCfg.MinConns = p.cfg.MinConns
	}
	if p.cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(p.cfg.ConnMaxIdleSec) * time.Second
	}
	if p.cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(p.cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var one int
	if err := pool.QueryRow(probeCtx, "SELECT 1").Scan(&one); err != nil {
		pool.Close()
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
			return nil, ErrConnectTimeout
		}
		return nil, err
	}

	p.logger.Info("connected to postgres")
	p.pool = pool
	return p.pool, nil
}

// TestConnection is a best-effort liveness check. All errors are logged and
// swallowed; callers only get a verdict.
func (p *Postgres) TestConnection(ctx context.Context) bool {
	pool, err := p.Connect(ctx)
	if err != nil {
		p.logger.Warn("postgres connection test failed", zap.Error(err))
		return false
	}
	if err := pool.Ping(ctx); err != nil {
		p.logger.Warn("postgres liveness query failed", zap.Error(err))
		return false
	}
	return true
}

// Ping verifies the existing pool without establishing one.
func (p *Postgres) Ping(ctx context.Context) error {
	p.mu.Lock()
	pool := p.pool
	p.mu.Unlock()
	if pool == nil {
		return errors.New("postgres not connected")
	}
	return pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}
