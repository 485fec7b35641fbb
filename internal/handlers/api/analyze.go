package api

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"skinscout/internal/analysis"
	"skinscout/internal/metrics"
	"skinscout/internal/models"
	"skinscout/internal/validation"
)

// AnalyzeHandler classifies ingredient lists via JSON API.
type AnalyzeHandler struct {
	classifier analysis.Classifier
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(classifier analysis.Classifier) *AnalyzeHandler {
	return &AnalyzeHandler{classifier: classifier}
}

// Analyze handles POST /api/analyze. The response body is the bare verdict
// {status, summary, riskScore} so existing front-ends can consume it as is.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validation.MsgMissingIngredients)
	}

	ingredients, msg := validation.Ingredients(req)
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	verdict, err := h.classifier.Classify(c.Context(), ingredients)
	if err != nil {
		slog.Error("failed to analyze ingredients", "count", len(ingredients), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	metrics.ObserveVerdict(verdict)
	metrics.RecordAnalysis(ingredients, verdict)

	return c.JSON(verdict)
}
