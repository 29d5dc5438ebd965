package lists

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"list-reconciler/core/reconcile"
	"list-reconciler/feature/lists/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var namePattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// DiffOptions controls a stateless diff.
type DiffOptions struct {
	// Strict rejects duplicated ids instead of pairing them in order.
	Strict bool
	// DetectMoves reports reordered items as moves (default true).
	DetectMoves bool
}

// UpdateResult is returned by Update.
type UpdateResult struct {
	List      string                         `json:"list"`
	Previous  int                            `json:"previous_revision"`
	Revision  int                            `json:"revision"`
	Unchanged bool                           `json:"unchanged"`
	Script    *reconcile.Script[models.Item] `json:"script"`
}

type cacheEntry struct {
	snap  *models.Snapshot
	built time.Time
}

// Service manages persisted lists: it diffs every pushed snapshot against the
// latest revision, stores the result and archives it.
type Service struct {
	repo    *Repository
	archive *Archive
	logger  *zap.Logger
	cfg     Config

	mu    sync.RWMutex
	cache map[string]cacheEntry
	sf    singleflight.Group

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewService creates a lists service. db and archive may be nil: without a
// database only stateless diffs are available, without an archive revisions
// are only kept in the database.
func NewService(db *gorm.DB, archive *Archive, logger *zap.Logger, cfg Config) *Service {
	s := &Service{
		archive: archive,
		logger:  logger,
		cfg:     cfg,
		cache:   make(map[string]cacheEntry),
		locks:   make(map[string]*sync.Mutex),
	}
	if db != nil {
		s.repo = NewRepository(db)
	}
	return s
}

// Migrate prepares the database schema.
func (s *Service) Migrate(ctx context.Context) error {
	if s.repo == nil {
		return ErrStoreUnavailable
	}
	return s.repo.Migrate(ctx)
}

// Diff computes the edit script between two item sequences without touching storage.
func (s *Service) Diff(old, new []models.Item, opts DiffOptions) (*reconcile.Script[models.Item], error) {
	strict := opts.Strict || s.cfg.StrictIdentity
	if err := models.Validate(old, strict); err != nil {
		return nil, fmt.Errorf("old: %w", err)
	}
	if err := models.Validate(new, strict); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	diffOpts := []reconcile.Option{reconcile.WithDetectMoves(opts.DetectMoves)}
	if strict {
		diffOpts = append(diffOpts, reconcile.WithStrictIdentity())
	}
	return reconcile.Compute(old, new, models.Callback, diffOpts...), nil
}

// Names returns all known lists.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	return s.repo.Names(ctx)
}

// Current returns the latest snapshot of a list.
func (s *Service) Current(ctx context.Context, list string) (*models.Snapshot, error) {
	if err := validateName(list); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	return s.latest(ctx, list)
}

// Update replaces the items of a list. It diffs items against the latest
// revision, stores a new revision when anything changed and returns the
// script a client displaying the previous revision must apply. Updates of one
// list are serialised.
func (s *Service) Update(ctx context.Context, list string, items []models.Item) (*UpdateResult, error) {
	if err := validateName(list); err != nil {
		return nil, err
	}
	if err := models.Validate(items, true); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	unlock := s.lock(list)
	defer unlock()

	prev, ok := s.cached(list)
	if !ok {
		// A load already in flight may predate the last committed update.
		var err error
		prev, err = s.load(ctx, list)
		if errors.Is(err, ErrListNotFound) {
			prev = &models.Snapshot{List: list, Items: []models.Item{}}
		} else if err != nil {
			return nil, err
		}
	}

	next := append([]models.Item{}, items...)
	script := reconcile.Compute(prev.Items, next, models.Callback, reconcile.WithStrictIdentity())

	result := &UpdateResult{List: list, Previous: prev.Revision, Revision: prev.Revision, Script: script}
	if script.Empty() && prev.Revision > 0 {
		result.Unchanged = true
		return result, nil
	}

	rev, err := models.NewRevision(list, prev.Revision+1, next, script.Summary)
	if err != nil {
		return nil, err
	}
	snap := &models.Snapshot{
		List:      list,
		Revision:  rev.Number,
		Items:     next,
		Summary:   script.Summary,
		CreatedAt: rev.CreatedAt,
	}

	if err := s.repo.Save(ctx, rev); err != nil {
		if errors.Is(err, ErrRevisionConflict) {
			// The database holds a revision the cache has not seen.
			if _, lerr := s.load(ctx, list); lerr != nil {
				s.invalidate(list)
			}
		}
		return nil, err
	}
	s.store(list, snap)

	if s.archive != nil && s.cfg.Archive {
		s.archiveRevision(ctx, snap)
	}

	s.logger.Info("List updated",
		zap.String("list", list),
		zap.Int("revision", rev.Number),
		zap.Int("size", len(next)),
		zap.Int("inserts", script.Summary.Inserts),
		zap.Int("removes", script.Summary.Removes),
		zap.Int("moves", script.Summary.Moves),
		zap.Int("changes", script.Summary.Changes),
	)

	result.Revision = rev.Number
	return result, nil
}

// archiveRevision uploads a committed revision and records its key. Failures
// are logged; integrity checks report revisions without an archive key.
func (s *Service) archiveRevision(ctx context.Context, snap *models.Snapshot) {
	key, err := s.archive.Store(ctx, snap)
	if err != nil {
		s.logger.Warn("Failed to archive list revision",
			zap.String("list", snap.List), zap.Int("revision", snap.Revision), zap.Error(err))
		return
	}
	if err := s.repo.SetArchiveKey(ctx, snap.List, snap.Revision, key); err != nil {
		s.logger.Warn("Failed to record archive key",
			zap.String("list", snap.List), zap.Int("revision", snap.Revision), zap.Error(err))
	}
}

// History returns recent revisions of a list, newest first.
func (s *Service) History(ctx context.Context, list string, limit int) ([]models.Revision, error) {
	if err := validateName(list); err != nil {
		return nil, err
	}
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	revs, err := s.repo.History(ctx, list, s.cfg.Limit(limit))
	if err != nil {
		return nil, err
	}
	if len(revs) == 0 {
		return nil, ErrListNotFound
	}
	return revs, nil
}

// Revision returns one revision of a list from the database, falling back to
// the archive when the row is gone.
func (s *Service) Revision(ctx context.Context, list string, number int) (*models.Snapshot, error) {
	if err := validateName(list); err != nil {
		return nil, err
	}
	if s.repo == nil && s.archive == nil {
		return nil, ErrStoreUnavailable
	}

	if s.repo != nil {
		rev, err := s.repo.Get(ctx, list, number)
		if err == nil {
			return rev.Snapshot()
		}
		if !errors.Is(err, ErrRevisionNotFound) || s.archive == nil {
			return nil, err
		}
	}
	return s.archive.Load(ctx, list, number)
}

// Archived returns the revision numbers of a list present in the archive.
func (s *Service) Archived(ctx context.Context, list string) ([]int, error) {
	if err := validateName(list); err != nil {
		return nil, err
	}
	if s.archive == nil {
		return nil, ErrStoreUnavailable
	}
	return s.archive.Revisions(ctx, list)
}

// latest returns the cached snapshot or loads it once for concurrent callers.
func (s *Service) latest(ctx context.Context, list string) (*models.Snapshot, error) {
	if snap, ok := s.cached(list); ok {
		return snap, nil
	}

	v, err, _ := s.sf.Do(list, func() (any, error) {
		return s.load(ctx, list)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

func (s *Service) cached(list string) (*models.Snapshot, bool) {
	ttl := s.cfg.CacheTTL()
	if ttl <= 0 {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.cache[list]
	s.mu.RUnlock()
	if !ok || time.Since(entry.built) >= ttl {
		return nil, false
	}
	return entry.snap, true
}

// load reads the latest revision from the database and caches it.
func (s *Service) load(ctx context.Context, list string) (*models.Snapshot, error) {
	rev, err := s.repo.Latest(ctx, list)
	if err != nil {
		return nil, err
	}
	snap, err := rev.Snapshot()
	if err != nil {
		return nil, err
	}
	s.store(list, snap)
	return snap, nil
}

// store caches snap unless a newer revision of the list is already cached.
func (s *Service) store(list string, snap *models.Snapshot) {
	if s.cfg.CacheTTL() <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.cache[list]; ok && cur.snap.Revision > snap.Revision {
		return
	}
	s.cache[list] = cacheEntry{snap: snap, built: time.Now()}
}

func (s *Service) invalidate(list string) {
	s.mu.Lock()
	delete(s.cache, list)
	s.mu.Unlock()
}

// lock acquires the update lock of a list and returns its release function.
func (s *Service) lock(list string) func() {
	s.locksMu.Lock()
	m, ok := s.locks[list]
	if !ok {
		m = &sync.Mutex{}
		s.locks[list] = m
	}
	s.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

func validateName(list string) error {
	if !namePattern.MatchString(list) {
		return fmt.Errorf("%w: %q", ErrInvalidName, list)
	}
	return nil
}
