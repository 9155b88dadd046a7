package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"postPilot/domain"
	"postPilot/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DraftService interface {
	GetAllDrafts(ctx context.Context) ([]domain.Draft, error)
	GetDraftByID(ctx context.Context, id uint) (*domain.Draft, error)
	CreateDraft(ctx context.Context, draft *domain.Draft) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, draft *domain.Draft) (*domain.Draft, error)
	DeleteDraft(ctx context.Context, id uint) error
}

type DraftHandler struct {
	draftService DraftService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewDraftHandler(draftService DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type CreateDraftRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=draft approved shipped"`
}

type UpdateDraftRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=draft approved shipped"`
}

func (h *DraftHandler) GetAllDrafts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	drafts, err := h.draftService.GetAllDrafts(ctx)
	if err != nil {
		logger.Error("Failed to find all drafts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(drafts))
}

func (h *DraftHandler) GetDraftByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid draft id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	draft, err := h.draftService.GetDraftByID(ctx, uint(id))
	if err != nil {
		logger.Error("Failed to find draft by id", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(draft))
}

func (h *DraftHandler) CreateDraft(c echo.Context) error {
	var req CreateDraftRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	draft := &domain.Draft{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}

	created, err := h.draftService.CreateDraft(ctx, draft)
	if err != nil {
		logger.Error("Failed to create draft", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *DraftHandler) UpdateDraft(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid draft id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	draft := &domain.Draft{
		ID:      uint(id),
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}

	updated, err := h.draftService.UpdateDraft(ctx, draft)
	if err != nil {
		logger.Error("Failed to update draft", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *DraftHandler) DeleteDraft(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid draft id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.draftService.DeleteDraft(ctx, uint(id)); err != nil {
		logger.Error("Failed to delete draft", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("draft deleted"))
}
