// Package bridge exposes the variance-bridge engine over HTTP.
package bridge

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"resort_proforma/pkg/core/analysis"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/models"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Register mounts the bridge routes on the group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/bridge/run", h.Run)
}

// RunRequest is the POST /api/bridge/run body.
type RunRequest struct {
	Base   models.FullModelInput `json:"base"`
	Target models.FullModelInput `json:"target"`
}

// RunResponse carries the attributed NPV steps from base to target.
type RunResponse struct {
	Steps []analysis.BridgeStep `json:"steps"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Run handles POST /api/bridge/run.
func (h *Handler) Run(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
	}

	steps, err := analysis.CalculateVarianceBridge(c.Request().Context(), req.Base, req.Target)
	if err != nil {
		var ve *validate.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, RunResponse{Steps: steps})
}
