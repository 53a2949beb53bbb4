package database

import (
	"context"

	"factfind/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, url string) *pgxpool.Pool {
	if url == "" {
		logger.Fatal("DATABASE_URL not set", nil)
	}

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		logger.Fatal("unable to parse DATABASE_URL", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Fatal("unable to connect to database", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("unable to ping database", err)
	}

	logger.Info("connected to PostgreSQL")
	return pool
}
