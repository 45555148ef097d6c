package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FleetSync_Go/internal/bootstrap"
	"github.com/osse101/FleetSync_Go/internal/database"
)

func (c *cli) poolConfig() database.PoolConfig {
	return database.PoolConfig{
		ConnString:      c.cfg.GetDBConnString(),
		ApplicationName: c.cfg.ServiceName,
		MaxConns:        c.cfg.DBMaxConns,
		MaxConnIdleTime: c.cfg.DBMaxIdle,
		MaxConnLifetime: c.cfg.DBMaxLife,
	}
}

// openDatabase connects and applies pending migrations
func (c *cli) openDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, c.poolConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// openApp connects, migrates and wires every service
func (c *cli) openApp(ctx context.Context) (*bootstrap.App, error) {
	pool, err := c.openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.InitializeServices(c.cfg, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return app, nil
}
