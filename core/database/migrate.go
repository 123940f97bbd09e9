package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/FMajesty/teleforms/core/logger"
)

// Migrate applies all up migrations from the given source directory,
// e.g. "file://migrations".
func Migrate(cfg Config, sourceURL string) error {
	m, err := migrate.New(sourceURL, cfg.URL())
	if err != nil {
		logger.Store.Error("migrate init failed",
			slog.String("event", "db.migrate"),
			slog.String("source", sourceURL),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("init migrations: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	fromVer, _, _ := m.Version()
	start := time.Now()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Store.Info("migrations up to date",
				slog.String("event", "db.migrate"),
				slog.Uint64("version", uint64(fromVer)),
			)
			return nil
		}
		logger.Store.Error("migration failed",
			slog.String("event", "db.migrate"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("apply migrations: %w", err)
	}

	toVer, _, _ := m.Version()
	logger.Store.Info("migrations applied",
		slog.String("event", "db.migrate"),
		slog.Uint64("from_ver", uint64(fromVer)),
		slog.Uint64("to_ver", uint64(toVer)),
		slog.Duration("duration", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}
