package db

import (
	"context"
	"log"
	"time"

	"family-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the Postgres pool and verifies connectivity.
func Connect(cfg *config.Config) *pgxpool.Pool {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}
	poolCfg.MaxConns = 10

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}

	log.Printf("Connected to database %s@%s:%d", cfg.Database.Name, cfg.Database.Host, cfg.Database.Port)
	return pool
}
