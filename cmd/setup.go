package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/lacery/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, then initializes the preset database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}
	r.config = config

	r.logger.Info("initializing database", "path", config.Database.Path)

	if _, err := r.openStore(); err != nil {
		return err
	}
	defer r.close()

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Database ready at %s\n", config.Database.Path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'lacery tui' to edit the scene\n")
	r.writePlain("2. Run 'lacery preset save <name>' to store it\n")
	return nil
}

// SetupConfig writes the config template without touching the database.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Config written to %s\n", configPath)
	return nil
}

// SetupRollback rolls back the most recent migration, or every migration newer than --to.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDB(cmd); err != nil {
		return err
	}
	defer r.close()

	m, err := r.migrator()
	if err != nil {
		return err
	}

	var reverted []int
	if cmd.IsSet("to") {
		reverted, err = m.RollbackTo(int(cmd.Int("to")))
	} else {
		var v int
		v, err = m.Rollback()
		reverted = []int{v}
	}
	if err != nil {
		return fmt.Errorf("failed to roll back: %w", err)
	}

	if len(reverted) == 0 {
		return r.writePlain("Already at version %d\n", cmd.Int("to"))
	}
	for _, v := range reverted {
		r.writePlain("✓ Rolled back migration %04d\n", v)
	}
	return nil
}

// SetupStatus lists every known migration and whether it is applied.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.openDB(cmd); err != nil {
		return err
	}
	defer r.close()

	m, err := r.migrator()
	if err != nil {
		return err
	}
	applied, err := m.Applied()
	if err != nil {
		return err
	}

	at := make(map[int]time.Time, len(applied))
	for _, a := range applied {
		at[a.Version] = a.AppliedAt
	}

	r.writePlainHeader(fmt.Sprintf("Migrations (%d/%d applied)", len(applied), len(m.Migrations())))
	for _, mg := range m.Migrations() {
		status := "pending"
		if t, ok := at[mg.Version]; ok {
			status = "applied " + t.Format(time.DateTime)
		}
		r.writePlain("  %04d %-24s %s\n", mg.Version, mg.Name, status)
	}
	return nil
}

// openDB opens the configured database unless one is already open.
func (r *Runner) openDB(cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	if r.db != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database)
	if err != nil {
		return err
	}
	r.db, r.ownsDB = db, true
	return nil
}
