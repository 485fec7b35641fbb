package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger is implemented by dependencies whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	deps map[string]Pinger
}

// NewProbeHandler creates a new probe handler. Nil dependencies are ignored,
// so a service running without a database is always ready.
func NewProbeHandler(deps map[string]Pinger) *ProbeHandler {
	h := &ProbeHandler{deps: map[string]Pinger{}}
	for name, p := range deps {
		if p != nil {
			h.deps[name] = p
		}
	}
	return h
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if every registered dependency is reachable.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for name, p := range h.deps {
		if err := p.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
