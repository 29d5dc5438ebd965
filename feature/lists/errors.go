package lists

import (
	"errors"

	"list-reconciler/feature/lists/models"
)

var (
	// ErrListNotFound is returned when a list has no revisions.
	ErrListNotFound = errors.New("list not found")
	// ErrRevisionNotFound is returned when a revision does not exist in the database or the archive.
	ErrRevisionNotFound = errors.New("revision not found")
	// ErrInvalidName is returned for list names outside [a-z0-9_-]{1,64}.
	ErrInvalidName = errors.New("invalid list name")
	// ErrInvalidItems is returned when items fail validation.
	ErrInvalidItems = models.ErrInvalidItem
	// ErrRevisionConflict is returned when the revision being saved already exists.
	ErrRevisionConflict = errors.New("revision already exists")
	// ErrStoreUnavailable is returned by persistent operations when no database is configured.
	ErrStoreUnavailable = errors.New("list store unavailable")
)
