package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scaffold/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	config, created, err := shared.LoadOrCreateConfig(r.configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		config = shared.DefaultConfig()
	} else if created {
		r.logger.Info("config file created", "path", r.configPath)
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)
	if _, _, err := r.openRepositories(ctx); err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return r.writeOK("database ready: %s", config.Database.Path)
}

// MigrateStatus lists known migrations and whether they have been applied.
func (r *Runner) MigrateStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	states, err := shared.MigrationStatus(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range states {
		applied := "pending"
		if s.AppliedAt != nil {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		if err := r.writePlain("%04d %-24s %s\n", s.Version, s.Name, applied); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func (r *Runner) MigrateDown(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	version, err := shared.RollbackMigration(ctx, db)
	if err != nil {
		return err
	}

	r.logger.Info("rolled back migration", "version", version)
	return r.writeOK("rolled back migration %04d", version)
}
