package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// ModelChecker reports whether the classifier can serve predictions.
type ModelChecker interface {
	Ready() error
}

// Pinger is an optional backing service checked by readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	model ModelChecker
	db    Pinger
}

// NewProbeHandler creates a new probe handler. database may be nil.
func NewProbeHandler(model ModelChecker, database Pinger) *ProbeHandler {
	return &ProbeHandler{model: model, db: database}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the model is loaded and the database, when configured, is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.model.Ready(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "model unavailable",
		})
	}

	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "database unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
