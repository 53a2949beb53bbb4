package database

import (
	"factfind/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func Migrate(url, dir string) {
	migration, err := migrate.New("file://"+dir, url)
	if err != nil {
		logger.Fatal("migration init error", err)
	}

	if err := migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal("migration failed", err)
	}
	logger.Info("migrations applied")
}
