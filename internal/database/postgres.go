package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/config"
)

// NewPostgresPool creates a PostgreSQL connection pool and pings it, bounded
// by cfg.DBConnectTimeout. An unreachable server is logged, not returned:
// the pool dials on demand and lookups fall back to other sources meanwhile.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns
	if cfg.DBConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout
	}

	if cfg.DBConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DBConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Warn().Err(err).
			Str("url", cfg.SanitizedDatabaseURL()).
			Msg("PostgreSQL unreachable, serving from CSV and built-in records until it recovers")
		return pool, nil
	}

	log.Info().
		Int32("max_conns", cfg.MaxDBConns).
		Str("url", cfg.SanitizedDatabaseURL()).
		Msg("PostgreSQL connected")

	return pool, nil
}
