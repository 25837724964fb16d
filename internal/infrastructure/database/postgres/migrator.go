package postgres

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// MigrateUp applies all pending schema migrations from cfg.MigrationDir.
// A database already at the latest version is not an error.
func MigrateUp(cfg config.DatabaseConfig, log logging.Logger) error {
	m, err := migrate.New("file://"+cfg.MigrationDir, cfg.DSN())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBConnError, "open migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("migrator close", logging.Err(errors.Join(srcErr, dbErr)))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("schema already up to date")
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "apply migrations")
	}
	version, dirty, _ := m.Version()
	log.Info("schema migrated",
		logging.Any("version", version),
		logging.Bool("dirty", dirty))
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(cfg config.DatabaseConfig, log logging.Logger) error {
	m, err := migrate.New("file://"+cfg.MigrationDir, cfg.DSN())
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeDBConnError, "open migrator")
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrCodeDBQueryError, "roll back migration")
	}
	log.Info("rolled back one migration")
	return nil
}
