package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/database"
)

// migrateCmd creates or updates the catalog schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	Long: `Create or update the departments and products tables.

PostgreSQL is migrated with GORM AutoMigrate. Spanner applies the DDL files
from spanner.migrations_dir; against the emulator the instance and database
are created first.

Examples:
  catalogctl migrate --config config.yaml
  CATALOG_DATABASE_DRIVER=spanner catalogctl migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	switch cfg.Database.Driver {
	case config.DriverSpanner:
		migrator, err := database.NewSpannerMigrator(cfg.Spanner.Database, cfg.Spanner.MigrationsDir, logger)
		if err != nil {
			return err
		}
		if err := migrator.Run(ctx); err != nil {
			return err
		}
	default:
		db, err := database.OpenPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if err := database.AutoMigrate(ctx, db); err != nil {
			return err
		}
	}

	logger.Info("migration complete", zap.String("driver", cfg.Database.Driver))
	fmt.Fprintln(cmd.OutOrStdout(), "Migration complete")
	return nil
}
