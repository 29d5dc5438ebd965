package lists

import (
	"list-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new lists feature. A nil client disables archiving.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, cfg Config) *Feature {
	var archive *Archive
	if client != nil && cfg.Archive {
		archive = NewArchive(client, bucket, cfg.ArchivePrefix)
	}
	svc := NewService(db, archive, logger, cfg)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "lists"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
