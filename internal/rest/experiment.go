package rest

import (
	"context"
	"net/http"
	"time"

	"postPilot/business/experiment"
	"postPilot/domain"
	"postPilot/pkg/logger"
	"postPilot/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ExperimentService interface {
	CreateRun(ctx context.Context, draftID uint, policy domain.AllocationPolicy, epsilon *float64, variants []experiment.VariantInput) (*domain.ExperimentRun, error)
	ExecuteRun(ctx context.Context, runID string) (*domain.ExperimentRun, []experiment.StepResult, error)
	Stats(ctx context.Context, runID string) ([]domain.VariantStats, error)
	Winner(ctx context.Context, runID string) (domain.VariantStats, error)
}

type ExperimentHandler struct {
	experimentService ExperimentService
	validator         *validator.Validate
}

func NewExperimentHandler(experimentService ExperimentService) *ExperimentHandler {
	return &ExperimentHandler{
		experimentService: experimentService,
		validator:         validator.New(),
	}
}

type VariantRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateRunRequest struct {
	DraftID  uint             `json:"draft_id"`
	Policy   string           `json:"policy" validate:"required,oneof=fixed_split epsilon_greedy"`
	Epsilon  *float64         `json:"epsilon" validate:"omitempty,gte=0,lte=1"`
	Variants []VariantRequest `json:"variants" validate:"required,min=2,dive"`
}

// POST /api/v1/experiments
func (h *ExperimentHandler) CreateRun(c echo.Context) error {
	var req CreateRunRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	variants := make([]experiment.VariantInput, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, experiment.VariantInput{
			Name:    v.Name,
			Content: v.Content,
		})
	}

	run, err := h.experimentService.CreateRun(
		c.Request().Context(),
		req.DraftID,
		domain.AllocationPolicy(req.Policy),
		req.Epsilon,
		variants,
	)
	if err != nil {
		logger.Error("Failed to create experiment run", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(run))
}

// POST /api/v1/experiments/:id/run
func (h *ExperimentHandler) ExecuteRun(c echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "run id is required"})
	}

	start := time.Now()
	run, steps, err := h.experimentService.ExecuteRun(c.Request().Context(), runID)
	if err != nil {
		logger.Error("Failed to execute experiment run", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.ExperimentRunDuration.Observe(time.Since(start).Seconds())
	metrics.ExperimentRuns.WithLabelValues(string(run.Policy)).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{
		"run":   run,
		"steps": steps,
	}))
}

// GET /api/v1/experiments/:id/stats
func (h *ExperimentHandler) Stats(c echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "run id is required"})
	}

	stats, err := h.experimentService.Stats(c.Request().Context(), runID)
	if err != nil {
		logger.Error("Failed to load experiment stats", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}

// GET /api/v1/experiments/:id/winner
func (h *ExperimentHandler) Winner(c echo.Context) error {
	runID := c.Param("id")
	if runID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "run id is required"})
	}

	winner, err := h.experimentService.Winner(c.Request().Context(), runID)
	if err != nil {
		logger.Error("Failed to determine experiment winner", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(winner))
}
