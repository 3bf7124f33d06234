package migrations

import (
	"embed"
	"errors"
	"fmt"

	"family-calendar/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/uptrace/bun"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// MigrateOptions defines configuration options for migration
type MigrateOptions struct {
	// AutoMigrate runs pending migrations on startup
	AutoMigrate bool
}

// DefaultOptions returns the default migration options
func DefaultOptions() MigrateOptions {
	return MigrateOptions{AutoMigrate: true}
}

// Runner applies the embedded schema migrations to the calendar database
type Runner struct {
	bunDB    *bun.DB
	options  MigrateOptions
	logger   *logger.Logger
	source   source.Driver
	migrator *migrate.Migrate
}

// NewRunner creates a new migration runner
func NewRunner(bunDB *bun.DB, opts MigrateOptions, log *logger.Logger) *Runner {
	return &Runner{
		bunDB:   bunDB,
		options: opts,
		logger:  log,
	}
}

// Initialize prepares the migration system
func (r *Runner) Initialize() error {
	driver, err := sqlite.WithInstance(r.bunDB.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	src, err := iofs.New(schemaFiles, "sql")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	r.source = src
	r.migrator = migrator
	return nil
}

// RunMigrations brings the schema up to date, repairing a dirty state first
func (r *Runner) RunMigrations() error {
	if !r.options.AutoMigrate {
		r.logger.Info("MIGRATE", "Auto migration disabled, skipping")
		return nil
	}
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return err
		}
	}

	version, dirty, err := r.migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		r.logger.Warn("MIGRATE", fmt.Sprintf("Detected dirty migration at version %d, forcing", version))
		if err := r.migrator.Force(int(version)); err != nil {
			return fmt.Errorf("failed to fix dirty migration: %w", err)
		}
	}

	if err := r.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err = r.Version()
	if err != nil {
		return err
	}
	r.logger.Info("MIGRATE", fmt.Sprintf("Current schema version: %d", version))
	return nil
}

// MigrateDown rolls back all migrations
func (r *Runner) MigrateDown() error {
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return err
		}
	}

	if err := r.migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// Version returns the applied schema version, 0 when nothing ran yet
func (r *Runner) Version() (uint, error) {
	if r.migrator == nil {
		if err := r.Initialize(); err != nil {
			return 0, err
		}
	}

	version, _, err := r.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, nil
}

// Close releases the migration source. The database handle belongs to the
// caller and stays open.
func (r *Runner) Close() error {
	if r.source != nil {
		if err := r.source.Close(); err != nil {
			return fmt.Errorf("error closing migration source: %w", err)
		}
	}
	return nil
}
