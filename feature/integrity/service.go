package integrity

import (
	"context"
	"errors"

	"list-reconciler/core/storage"
	"list-reconciler/feature/integrity/checks"
	"list-reconciler/feature/lists"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by checks that need a database when none is configured.
var ErrNoDatabase = errors.New("database not configured")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. prefix is the folder list
// revisions are archived under.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, []string{s.prefix})
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckArchive reports revisions without an archived snapshot.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	report, _, err := checks.CheckArchive(ctx, s.client, s.bucket, lists.NewRepository(s.db))
	return report, err
}

// FixArchive archives every revision reported by CheckArchive and returns the
// report taken before fixing.
func (s *Service) FixArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	repo := lists.NewRepository(s.db)
	report, broken, err := checks.CheckArchive(ctx, s.client, s.bucket, repo)
	if err != nil {
		return nil, err
	}
	if len(broken) == 0 {
		return report, nil
	}

	s.logger.Info("Archiving missing revisions", zap.Int("count", len(broken)))
	archive := lists.NewArchive(s.client, s.bucket, s.prefix)
	if err := checks.FixArchive(ctx, repo, archive, broken); err != nil {
		s.logger.Error("Failed to archive revisions", zap.Error(err))
		return report, err
	}
	return report, nil
}

// CheckServer compares the database schema with the models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckServerIntegrity(s.db)
}
