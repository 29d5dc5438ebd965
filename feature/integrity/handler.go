package integrity

import (
	"errors"

	"list-reconciler/core/logger"
	"list-reconciler/core/utils"
	"list-reconciler/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/archive", h.HandleArchiveCheck)
	group.Get("/server", h.HandleServerCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Structure, Archive, Server).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if archiveReport, err := h.service.CheckArchive(ctx); err != nil {
		report["archive"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["archive"] = archiveReport
	}

	if srvReport, err := h.service.CheckServer(); err != nil {
		report["server"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["server"] = srvReport
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes structure.
// @Summary Check Structure
// @Description Checks if the archive folder exists in the storage bucket. Optionally creates it.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	missing, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.Context(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleArchiveCheck checks and optionally repairs the revision archive.
// @Summary Check Archive
// @Description Checks that every stored list revision has an archived snapshot. Optionally re-archives the missing ones.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Archive missing revisions"
// @Success 200 {object} checks.ArchiveReport "Archive Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database Not Configured"
// @Router /integrity/archive [get]
func (h *Handler) HandleArchiveCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	var (
		report *checks.ArchiveReport
		err    error
	)
	if fix {
		report, err = h.service.FixArchive(c.Context())
	} else {
		report, err = h.service.CheckArchive(c.Context())
	}
	if err != nil {
		l.Error("Archive check failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched {
		l.Warn("Archive incomplete",
			zap.Int("missing", len(report.Missing)),
			zap.Int("unarchived", len(report.Unarchived)),
			zap.Bool("fixed", fix))
	}

	status := "checked"
	if fix && !report.Matched {
		status = "fixed"
	}
	return c.JSON(fiber.Map{
		"status": status,
		"report": report,
	})
}

// HandleServerCheck checks server schema integrity.
// @Summary Check Server Schema
// @Description Checks if the database schema matches the list revision model.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.ServerReport "Server Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Database Not Configured"
// @Router /integrity/server [get]
func (h *Handler) HandleServerCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting server schema check")

	report, err := h.service.CheckServer()
	if err != nil {
		l.Error("Server schema check failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

func statusOf(err error) int {
	if errors.Is(err, ErrNoDatabase) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
