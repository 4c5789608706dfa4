// Package covenants exposes the covenant monitor over HTTP: run the
// pipeline for an input, then test each covenant against the monthly
// debt metrics.
package covenants

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"resort_proforma/pkg/core/analysis"
	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/models"
)

type Handler struct {
	orch *pipeline.Orchestrator
}

// NewHandler creates a covenants handler. nil gets a default
// orchestrator with an in-memory cache.
func NewHandler(orch *pipeline.Orchestrator) *Handler {
	if orch == nil {
		orch = pipeline.New(nil)
	}
	return &Handler{orch: orch}
}

// Register mounts the covenant routes on the group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/covenants/check", h.Check)
}

// CheckRequest is the POST /api/covenants/check body.
type CheckRequest struct {
	Input     models.FullModelInput `json:"input"`
	Covenants []models.Covenant     `json:"covenants"`
}

// CheckResponse lists every breach event in month order per covenant.
type CheckResponse struct {
	Breaches []models.BreachEvent `json:"breaches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Check handles POST /api/covenants/check.
func (h *Handler) Check(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
	}
	if err := validate.Covenants(req.Covenants); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	out, err := h.orch.Run(c.Request().Context(), req.Input)
	if err != nil {
		var ve *validate.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	breaches, err := analysis.CheckCovenants(nil, out.Capital.DebtKpis, req.Covenants)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, CheckResponse{Breaches: breaches})
}
