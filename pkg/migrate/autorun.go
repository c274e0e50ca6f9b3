package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ooh-agent-backend/pkg/config"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db"
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/angelmondragon/ooh-agent-backend/pkg/logger"
)

// Up brings the schema to the latest version. The goose files are Postgres
// DDL, so SQLite databases get the schema derived from the models instead.
func Up(ctx context.Context, client *db.Client, dir string, logg *logger.Logger) error {
	if client.Dialect() == "sqlite" {
		if logg != nil {
			logg.Info(ctx, "migrate.sqlite_models")
		}
		if err := client.DB().WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migrating models: %w", err)
		}
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "migrate.goose_up")
	}
	if err := Run(ctx, sqlDB, dir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	return nil
}

// MaybeRunDev runs Up from the embedded files when the app is in dev with
// OOH_AUTO_MIGRATE set. Other environments migrate through cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if logg != nil {
		ctx = logg.WithField(ctx, "dialect", client.Dialect())
	}
	return Up(ctx, client, EmbeddedDir, logg)
}
