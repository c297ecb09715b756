package syncplan

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campaign-sync/core/logger"
)

// Handler exposes the sync flow over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/preview", h.HandlePreview)
	group.Post("/run", h.HandleRun)
	group.Get("/progress", h.HandleProgress)
	group.Post("/reset", h.HandleReset)
}

// HandlePreview reconciles both stores and returns the result for review.
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	preview, err := h.service.Preview(c.Context())
	if err != nil {
		l.Error("Sync preview failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(preview)
}

// HandleRun executes a plan built from the posted reconciliation and
// choices. A run already in flight answers 409.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}

	resp, err := h.service.Run(c.Context(), req)
	if errors.Is(err, ErrAlreadyRunning) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(resp)
}

// HandleProgress returns the shared progress counters.
func (h *Handler) HandleProgress(c *fiber.Ctx) error {
	processed, total := h.service.Progress()
	return c.JSON(fiber.Map{
		"processed": processed,
		"total":     total,
	})
}

// HandleReset clears the engine's sync metadata on every world record.
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Reset(c.Context()); err != nil {
		l.Error("Sync reset failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "reset"})
}
