// Package postgres manages the PostgreSQL connection pool and schema
// migrations.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Connect builds a pgx pool from cfg and verifies connectivity.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBConnError, "parse database config")
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdle

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBConnError, "create connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrCodeDBConnError, "database ping failed")
	}
	return pool, nil
}
