package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/config"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/database"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/migration"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tools",
		Long:  `Synchronize the database schema with the registered models.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newUpCommand())

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply schema changes",
		Long:  `Create or alter the database tables to match the registered models.`,
		RunE:  runUp,
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	models := migration.AutoMigrateModels()
	if err := database.Get().AutoMigrate(models...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migration completed", "models", len(models))
	return nil
}
