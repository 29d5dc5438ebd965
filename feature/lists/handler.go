package lists

import (
	"errors"

	"list-reconciler/core/logger"
	"list-reconciler/core/reconcile"
	"list-reconciler/core/utils"
	"list-reconciler/feature/lists/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DiffRequest is the body of POST /diff.
type DiffRequest struct {
	Old    []models.Item `json:"old"`
	New    []models.Item `json:"new"`
	Strict bool          `json:"strict"`
	// DetectMoves defaults to true when omitted.
	DetectMoves *bool `json:"detect_moves,omitempty"`
}

// DiffResponse is the body returned by POST /diff.
type DiffResponse struct {
	Script        *reconcile.Script[models.Item] `json:"script"`
	Notifications []reconcile.Notification       `json:"notifications"`
}

// UpdateRequest is the body of PUT /lists/{name}.
type UpdateRequest struct {
	Items []models.Item `json:"items"`
}

// Handler handles HTTP requests for lists.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the lists routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/diff", h.HandleDiff)

	group := app.Group("/lists")
	group.Get("/", h.HandleNames)
	group.Get("/:name", h.HandleCurrent)
	group.Put("/:name", h.HandleUpdate)
	group.Get("/:name/revisions", h.HandleHistory)
	group.Get("/:name/revisions/:revision", h.HandleRevision)
	group.Get("/:name/archive", h.HandleArchived)
}

// HandleDiff computes the edit script between two item sequences.
// @Summary Diff Lists
// @Description Computes the minimal edit script turning old into new and the surface notifications it produces.
// @Tags lists
// @Accept json
// @Produce json
// @Param request body DiffRequest true "Old and new items"
// @Success 200 {object} DiffResponse "Edit Script"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /diff [post]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req DiffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	opts := DiffOptions{Strict: req.Strict, DetectMoves: true}
	if req.DetectMoves != nil {
		opts.DetectMoves = *req.DetectMoves
	}

	script, err := h.service.Diff(req.Old, req.New, opts)
	if err != nil {
		return h.fail(c, l, "Diff failed", err)
	}

	rec := reconcile.NewRecorder(len(req.Old))
	reconcile.Dispatch(rec, script)

	l.Debug("Diff computed",
		zap.Int("old", script.OldLen),
		zap.Int("new", script.NewLen),
		zap.Int("edits", script.Len()))

	return c.JSON(DiffResponse{Script: script, Notifications: rec.Notifications()})
}

// HandleNames lists all known lists.
// @Summary List Names
// @Description Returns the names of all stored lists.
// @Tags lists
// @Produce json
// @Success 200 {array} string "List Names"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /lists [get]
func (h *Handler) HandleNames(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.Names(c.Context())
	if err != nil {
		return h.fail(c, l, "Listing names failed", err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(names)
}

// HandleCurrent returns the latest snapshot of a list.
// @Summary Get List
// @Description Returns the latest revision of a list.
// @Tags lists
// @Produce json
// @Param name path string true "List name"
// @Success 200 {object} models.Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{name} [get]
func (h *Handler) HandleCurrent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Current(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, "Loading list failed", err)
	}
	return c.JSON(snap)
}

// HandleUpdate replaces the items of a list.
// @Summary Update List
// @Description Stores a new revision of a list and returns the edit script from the previous revision.
// @Tags lists
// @Accept json
// @Produce json
// @Param name path string true "List name"
// @Param request body UpdateRequest true "New items"
// @Success 200 {object} UpdateResult "Update Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Revision Conflict"
// @Failure 503 {object} map[string]string "Store Unavailable"
// @Router /lists/{name} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Update(c.Context(), c.Params("name"), req.Items)
	if err != nil {
		return h.fail(c, l, "Updating list failed", err)
	}
	return c.JSON(result)
}

// HandleHistory returns recent revisions of a list.
// @Summary List Revisions
// @Description Returns the most recent revisions of a list, newest first.
// @Tags lists
// @Produce json
// @Param name path string true "List name"
// @Param limit query int false "Maximum number of revisions"
// @Success 200 {array} models.Revision "Revisions"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{name}/revisions [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	revs, err := h.service.History(c.Context(), c.Params("name"), utils.ToInt(c.Query("limit")))
	if err != nil {
		return h.fail(c, l, "Loading history failed", err)
	}
	return c.JSON(revs)
}

// HandleRevision returns one revision of a list.
// @Summary Get Revision
// @Description Returns one revision of a list from the database or the archive.
// @Tags lists
// @Produce json
// @Param name path string true "List name"
// @Param revision path int true "Revision number"
// @Success 200 {object} models.Snapshot "Snapshot"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /lists/{name}/revisions/{revision} [get]
func (h *Handler) HandleRevision(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	number, err := c.ParamsInt("revision")
	if err != nil || number <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid revision"})
	}

	snap, err := h.service.Revision(c.Context(), c.Params("name"), number)
	if err != nil {
		return h.fail(c, l, "Loading revision failed", err)
	}
	return c.JSON(snap)
}

// HandleArchived lists archived revision numbers of a list.
// @Summary List Archived Revisions
// @Description Returns the revision numbers of a list present in object storage.
// @Tags lists
// @Produce json
// @Param name path string true "List name"
// @Success 200 {array} int "Revision Numbers"
// @Failure 503 {object} map[string]string "Archive Unavailable"
// @Router /lists/{name}/archive [get]
func (h *Handler) HandleArchived(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	revs, err := h.service.Archived(c.Context(), c.Params("name"))
	if err != nil {
		return h.fail(c, l, "Listing archive failed", err)
	}
	if revs == nil {
		revs = []int{}
	}
	return c.JSON(revs)
}

// fail maps service errors to HTTP statuses.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidItems), errors.Is(err, reconcile.ErrAmbiguousIdentity):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrListNotFound), errors.Is(err, ErrRevisionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRevisionConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
