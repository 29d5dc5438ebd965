package lists

import (
	"context"
	"errors"
	"fmt"

	"list-reconciler/feature/lists/models"

	"gorm.io/gorm"
)

// historyColumns are loaded for revision listings; items are left out.
var historyColumns = []string{
	"id", "list_name", "revision", "size", "inserts", "removes", "moves", "changes", "archive_key", "created_at",
}

// Repository persists list revisions with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the list_revisions table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.Revision{}); err != nil {
		return fmt.Errorf("failed to migrate list revisions: %w", err)
	}
	return nil
}

// Latest returns the newest revision of a list.
func (r *Repository) Latest(ctx context.Context, list string) (*models.Revision, error) {
	var rev models.Revision
	err := r.db.WithContext(ctx).
		Where("list_name = ?", list).
		Order("revision DESC").
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest revision of %s: %w", list, err)
	}
	return &rev, nil
}

// Get returns one revision of a list.
func (r *Repository) Get(ctx context.Context, list string, number int) (*models.Revision, error) {
	var rev models.Revision
	err := r.db.WithContext(ctx).
		Where("list_name = ? AND revision = ?", list, number).
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRevisionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load revision %d of %s: %w", number, list, err)
	}
	return &rev, nil
}

// History returns up to limit revisions of a list, newest first, without items.
func (r *Repository) History(ctx context.Context, list string, limit int) ([]models.Revision, error) {
	var revs []models.Revision
	err := r.db.WithContext(ctx).
		Select(historyColumns).
		Where("list_name = ?", list).
		Order("revision DESC").
		Limit(limit).
		Find(&revs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history of %s: %w", list, err)
	}
	return revs, nil
}

// Names returns the names of all lists, sorted.
func (r *Repository) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Revision{}).
		Distinct("list_name").
		Order("list_name").
		Pluck("list_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}
	return names, nil
}

// Save inserts a new revision.
func (r *Repository) Save(ctx context.Context, rev *models.Revision) error {
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: revision %d of %s", ErrRevisionConflict, rev.Number, rev.ListName)
		}
		return fmt.Errorf("failed to save revision %d of %s: %w", rev.Number, rev.ListName, err)
	}
	return nil
}

// Unarchived returns the revisions with no archive key, without items.
func (r *Repository) Unarchived(ctx context.Context) ([]models.Revision, error) {
	var revs []models.Revision
	err := r.db.WithContext(ctx).
		Select(historyColumns).
		Where("archive_key IS NULL OR archive_key = ''").
		Order("list_name, revision").
		Find(&revs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load unarchived revisions: %w", err)
	}
	return revs, nil
}

// Archived returns the revisions that have an archive key, without items.
func (r *Repository) Archived(ctx context.Context) ([]models.Revision, error) {
	var revs []models.Revision
	err := r.db.WithContext(ctx).
		Select(historyColumns).
		Where("archive_key <> ''").
		Order("list_name, revision").
		Find(&revs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load archived revisions: %w", err)
	}
	return revs, nil
}

// SetArchiveKey records the archive key of a revision.
func (r *Repository) SetArchiveKey(ctx context.Context, list string, number int, key string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Revision{}).
		Where("list_name = ? AND revision = ?", list, number).
		Update("archive_key", key)
	if res.Error != nil {
		return fmt.Errorf("failed to set archive key of %s@%d: %w", list, number, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRevisionNotFound
	}
	return nil
}
