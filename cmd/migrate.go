package main

import (
	"context"
	"fmt"

	"github.com/samhab/hslu-devops-evaluation/internal/config"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand applies the embedded migrations that create the runs and
// team_results tables. It works regardless of DATABASE_ENABLED so the schema
// can be prepared before the first stored evaluation.
func migrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Creates or upgrades the result store schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.WithFields(context.Background(),
				zap.String("host", cfg.Database.Host),
				zap.String("database", cfg.Database.DatabaseName))

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			applied, err := strg.Migrate(ctx)
			if err != nil {
				logger.Error(ctx, "migration failed", zap.Error(err), zap.Int("applied", applied))

				return fmt.Errorf("could not migrate result store: %w", err)
			}
			if applied == 0 {
				logger.Info(ctx, "Result store is up to date")

				return nil
			}
			logger.Info(ctx, "Result store migrated", zap.Int("applied", applied))

			return nil
		},
	}
}
