// Package sensitivity exposes the sensitivity grid engine over HTTP.
package sensitivity

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"resort_proforma/pkg/core/analysis"
	"resort_proforma/pkg/models"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register mounts the sensitivity routes on the group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/sensitivity/run", h.Run)
}

// RunRequest is the POST /api/sensitivity/run body.
type RunRequest struct {
	Input  models.FullModelInput      `json:"input"`
	Config analysis.SensitivityConfig `json:"config"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Run handles POST /api/sensitivity/run. A malformed grid (unknown
// variable, over the 10-step cap) is a 400 before any model runs.
func (h *Handler) Run(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
	}

	res, err := analysis.RunSensitivity(c.Request().Context(), req.Input, req.Config)
	if err != nil {
		// Grid validation errors mention the axis; anything else is a
		// server-side failure.
		if strings.Contains(err.Error(), "axis") {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}
