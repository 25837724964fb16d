package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/database/postgres"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
)

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := migrateSetup()
				if err != nil {
					return err
				}
				return postgres.MigrateUp(cfg.Database, log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := migrateSetup()
				if err != nil {
					return err
				}
				return postgres.MigrateDown(cfg.Database, log)
			},
		},
	)
	return migrate
}

func migrateSetup() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	return cfg, log, nil
}
