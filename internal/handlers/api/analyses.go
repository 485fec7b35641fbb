package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"skinscout/internal/db"
	"skinscout/internal/models"
)

// AnalysisHandler exposes persisted analysis history via JSON API.
type AnalysisHandler struct {
	db *db.DB
}

// NewAnalysisHandler creates a new analysis history handler.
func NewAnalysisHandler(database *db.DB) *AnalysisHandler {
	return &AnalysisHandler{db: database}
}

// List returns the most recent analyses. Accepts ?limit=N.
func (h *AnalysisHandler) List(c fiber.Ctx) error {
	limit := db.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	analyses, err := h.db.ListRecentAnalyses(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch analyses")
	}

	return jsonSuccess(c, models.AnalysisListResponse{
		Analyses: analyses,
		Count:    len(analyses),
	})
}

// Get returns a single analysis by ID.
func (h *AnalysisHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid analysis id")
	}

	a, err := h.db.GetAnalysisByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			return jsonError(c, fiber.StatusNotFound, "analysis not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch analysis")
	}

	return jsonSuccess(c, a)
}
