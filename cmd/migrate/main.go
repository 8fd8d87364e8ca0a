package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"teamspace/internal/config"
	"teamspace/internal/database"
	"teamspace/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
}

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Apply or roll back team space schema migrations",
	Long:          `Runs the embedded SQL migrations against the Postgres database named by the DB_* environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")
		return nil
	}),
}

var downCmd = &cobra.Command{
	Use:   "down [N]",
	Short: "Roll back the last N migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)
		return nil
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: withMigrator(func(m *migrate.Migrate, _ []string) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Get().Info("No migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
		return nil
	}),
}

var forceCmd = &cobra.Command{
	Use:   "force N",
	Short: "Mark version N as applied and clear the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: withMigrator(func(m *migrate.Migrate, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version failed: %w", err)
		}
		logger.Get().Infof("Forced version %d", version)
		return nil
	}),
}

// withMigrator opens a migrator for the configured database around fn.
func withMigrator(fn func(m *migrate.Migrate, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dbConfig := database.NewConfig(cfg)
		if dbConfig.Driver != database.DriverPostgres {
			return fmt.Errorf("migrations run against postgres only, DB_DRIVER is %q", dbConfig.Driver)
		}

		m, err := database.NewMigrator(dbConfig.URL())
		if err != nil {
			return err
		}
		defer database.CloseMigrator(m)

		return fn(m, args)
	}
}
