package cmd

import (
	"context"

	"list-reconciler/core/config"
	"list-reconciler/core/database"
	"list-reconciler/core/storage"
	"list-reconciler/feature/lists"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openDatabase connects to the configured database and migrates the list
// schema. It returns nil when the database is unreachable.
func openDatabase(ctx context.Context, cfg *config.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	if err := lists.NewRepository(db).Migrate(ctx); err != nil {
		logg.Warn("Failed to migrate list schema", zap.Error(err))
		return db
	}
	logg.Info("Connected to list database", zap.String("driver", cfg.Database.Driver))
	return db
}

// openStorage creates the storage client. It returns nil when the client
// cannot be created.
func openStorage(cfg *config.Config, logg *zap.Logger) storage.Client {
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Optional storage client failed", zap.Error(err))
		return nil
	}
	return store
}
