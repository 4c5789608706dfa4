// Package model exposes the pipeline over HTTP. Runs go through the
// request runner, so a client hammering the endpoint with revised
// assumptions only ever receives the result of its latest submission.
package model

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/models"
	"resort_proforma/pkg/report"
	"resort_proforma/pkg/runner"
)

// Handler serves model runs and the report of the most recent one.
type Handler struct {
	runner *runner.Runner

	mu   sync.RWMutex
	last *pipeline.FullModelOutput
}

// NewHandler creates a model handler over the given runner. nil gets a
// default runner with an in-memory cache.
func NewHandler(r *runner.Runner) *Handler {
	if r == nil {
		r = runner.New(nil)
	}
	return &Handler{runner: r}
}

// Register mounts the model routes on the group.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/model/run", h.Run)
	g.GET("/model/report", h.Report)
}

// ErrorResponse is the JSON error body for every API endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Run handles POST /api/model/run.
func (h *Handler) Run(c echo.Context) error {
	var input models.FullModelInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
	}

	req := h.runner.Submit(c.Request().Context(), input)
	res := <-req.Done

	if res.Err != nil {
		if errors.Is(res.Err, runner.ErrSuperseded) {
			// A newer run was submitted while this one was in flight;
			// the client should use that run's response instead.
			return c.JSON(http.StatusConflict, ErrorResponse{Error: res.Err.Error()})
		}
		var ve *validate.ValidationError
		if errors.As(res.Err, &ve) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: res.Err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Err.Error()})
	}

	h.mu.Lock()
	h.last = res.Output
	h.mu.Unlock()

	return c.JSON(http.StatusOK, res.Output)
}

// Report handles GET /api/model/report. Renders the latest completed
// run as markdown, or HTML with ?format=html.
func (h *Handler) Report(c echo.Context) error {
	h.mu.RLock()
	last := h.last
	h.mu.RUnlock()

	if last == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no completed run to report on"})
	}

	if c.QueryParam("format") == "html" {
		html, err := report.Html(last)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return c.HTML(http.StatusOK, html)
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(last)))
}
