package integrity

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

// NewFeature creates a new integrity feature.
func NewFeature(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Feature {
	svc := NewService(client, bucket, prefix, logger, db)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled reports whether object storage is configured.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
