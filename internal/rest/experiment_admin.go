package rest

import (
	"context"
	"net/http"

	"postPilot/business/experiment"
	"postPilot/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PersonaRepository interface {
	FindActive(ctx context.Context, limit int) ([]domain.Persona, error)
	Create(ctx context.Context, p *domain.Persona) error
}

type ExperimentAdminHandler struct {
	cfgRepo     experiment.ConfigRepository
	personaRepo PersonaRepository
}

func NewExperimentAdminHandler(cfgRepo experiment.ConfigRepository, personaRepo PersonaRepository) *ExperimentAdminHandler {
	return &ExperimentAdminHandler{
		cfgRepo:     cfgRepo,
		personaRepo: personaRepo,
	}
}

// GET /api/v1/admin/experiments/config?policy=epsilon_greedy
func (h *ExperimentAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()
	policy := c.QueryParam("policy")

	if policy == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "policy is required",
		})
	}

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, policy)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/experiments/config
// body: ExperimentConfig JSON
func (h *ExperimentAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.ExperimentConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Policy == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "policy is required",
		})
	}
	if body.Epsilon < 0 || body.Epsilon > 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "epsilon must be in [0, 1]",
		})
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// GET /api/v1/admin/personas
func (h *ExperimentAdminHandler) ListPersonas(c echo.Context) error {
	personas, err := h.personaRepo.FindActive(c.Request().Context(), 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, personas)
}

// POST /api/v1/admin/personas
// body: { "name": "...", "profile": "..." }
type createPersonaRequest struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
}

func (h *ExperimentAdminHandler) CreatePersona(c echo.Context) error {
	var body createPersonaRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Name == "" || body.Profile == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name and profile are required",
		})
	}

	persona := domain.Persona{
		ID:      uuid.NewString(),
		Name:    body.Name,
		Profile: body.Profile,
		Active:  true,
	}
	if err := h.personaRepo.Create(c.Request().Context(), &persona); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, persona)
}
