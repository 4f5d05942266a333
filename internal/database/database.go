package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool is the slice of *pgxpool.Pool the readiness probe needs
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolOptions sizes the connection pool
type PoolOptions struct {
	MaxConns int
	MinConns int
	MaxIdle  time.Duration
	MaxLife  time.Duration
}

func clampInt32(n int) int32 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	}
	return int32(n)
}

// NewPool opens a PostgreSQL pool and verifies it with a ping. The pool is
// closed again if the ping fails.
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = clampInt32(opts.MaxConns)
	}
	cfg.MinConns = min(clampInt32(opts.MinConns), cfg.MaxConns)
	if opts.MinConns == 0 {
		cfg.MinConns = min(DefaultMinConnections, cfg.MaxConns)
	}
	if opts.MaxLife > 0 {
		cfg.MaxConnLifetime = opts.MaxLife
	}
	if opts.MaxIdle > 0 {
		cfg.MaxConnIdleTime = opts.MaxIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase,
		"host", cfg.ConnConfig.Host,
		"database", cfg.ConnConfig.Database,
		"max_conns", cfg.MaxConns)
	return pool, nil
}
