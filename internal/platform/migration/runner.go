// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package migration applies versioned schema migrations at startup using
// golang-migrate. The runner refuses to start against a dirty database, so
// a half-applied migration always requires an operator decision rather than
// a silent retry.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme with golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme for on-disk .sql migrations.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

/*
RunUp brings the database schema up to the latest available version.

A no-op run (schema already current) is not an error. A dirty schema —
a previous migration that started but never finished — aborts with an
error describing the stuck version.

Parameters:
  - dsn: libpq-style DSN or postgres:// URL for the target database.
  - migrationsPath: directory holding the numbered .sql migration files.
  - logger: receives migration progress events.
*/
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, toPgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration_init: %w", err)
	}
	defer closeMigrator(migrator, logger)

	migrator.Log = &slogBridge{logger: logger}

	fromVersion, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration_version_read: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration_dirty_schema: version %d needs manual repair before the service can start", fromVersion)
	}

	logger.Info("schema_migration_started", slog.Int("from_version", int(fromVersion)))

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("schema_already_current", slog.Int("version", int(fromVersion)))
		return nil
	case err != nil:
		return fmt.Errorf("migration_up: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("schema_migration_applied",
		slog.Int("from_version", int(fromVersion)),
		slog.Int("to_version", int(toVersion)),
	)
	return nil
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	srcErr, dbErr := migrator.Close()
	if srcErr != nil {
		logger.Error("migration_source_close_failed", slog.Any("error", srcErr))
	}
	if dbErr != nil {
		logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// toPgx5URL rewrites standard postgres URL schemes to the pgx5:// scheme
// that golang-migrate's pgx/v5 driver registers under.
func toPgx5URL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// slogBridge satisfies migrate.Logger, routing the library's chatter to
// debug level so it stays out of production logs.
type slogBridge struct {
	logger *slog.Logger
}

func (b *slogBridge) Printf(format string, args ...any) {
	b.logger.Debug(fmt.Sprintf(format, args...))
}

func (b *slogBridge) Verbose() bool { return false }
