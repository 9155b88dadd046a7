package rest

import (
	"context"
	"net/http"
	"time"

	"postPilot/domain"
	"postPilot/pkg/logger"
	"postPilot/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type AnalysisService interface {
	Analyze(ctx context.Context, text string) (domain.Analysis, error)
	GetByRequestID(ctx context.Context, requestID string) (domain.Analysis, error)
	Compare(ctx context.Context, baselineText, variantText string) (domain.AnalysisComparison, error)
}

type AnalysisHandler struct {
	analysisService AnalysisService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewAnalysisHandler(analysisService AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		validator:       validator.New(),
		timeout:         30 * time.Second,
	}
}

type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

type CompareRequest struct {
	BaselineText string `json:"baseline_text" validate:"required"`
	VariantText  string `json:"variant_text" validate:"required"`
}

func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.analysisService.Analyze(ctx, req.Text)
	if err != nil {
		logger.Error("Failed to analyze post", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.AnalyzeLatency.Observe(time.Since(start).Seconds())
	metrics.AnalyzeRequests.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *AnalysisHandler) GetAnalysis(c echo.Context) error {
	requestID := c.Param("request_id")
	if requestID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "request id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.analysisService.GetByRequestID(ctx, requestID)
	if err != nil {
		logger.Error("Failed to load analysis", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *AnalysisHandler) Compare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.analysisService.Compare(ctx, req.BaselineText, req.VariantText)
	if err != nil {
		logger.Error("Failed to compare posts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
