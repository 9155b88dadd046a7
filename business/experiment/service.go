package experiment

import (
	"context"
	"fmt"

	"postPilot/domain"
	"postPilot/pkg/logger"
	"postPilot/pkg/trace"
)

// ---- Repository interfaces ----

type RunRepository interface {
	SaveRun(ctx context.Context, run *domain.ExperimentRun) error
	GetRun(ctx context.Context, id string) (*domain.ExperimentRun, error)
}

type PersonaRepository interface {
	FindActive(ctx context.Context, limit int) ([]domain.Persona, error)
}

type DraftRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Draft, error)
}

// ---- Usecase / Service ----

type Service struct {
	runRepo     RunRepository
	personaRepo PersonaRepository
	draftRepo   DraftRepository
	cfgRepo     ConfigRepository
	engine      *Engine
	defaultCfg  Config
}

func NewService(
	runRepo RunRepository,
	personaRepo PersonaRepository,
	draftRepo DraftRepository,
	cfgRepo ConfigRepository,
	engine *Engine,
	defaultCfg Config,
) *Service {
	return &Service{
		runRepo:     runRepo,
		personaRepo: personaRepo,
		draftRepo:   draftRepo,
		cfgRepo:     cfgRepo,
		engine:      engine,
		defaultCfg:  defaultCfg,
	}
}

type VariantInput struct {
	Name    string
	Content string
}

// CreateRun sets up a run with zeroed stats. Epsilon resolves from the
// request when given, otherwise from the per-policy config.
func (s *Service) CreateRun(
	ctx context.Context,
	draftID uint,
	policy domain.AllocationPolicy,
	epsilon *float64,
	variants []VariantInput,
) (*domain.ExperimentRun, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if s.draftRepo != nil && draftID != 0 {
		if _, err := s.draftRepo.GetByID(ctx, draftID); err != nil {
			return nil, fmt.Errorf("load draft %d: %w", draftID, err)
		}
	}

	cfg := s.loadConfig(ctx, policy)
	eps := cfg.Epsilon
	if epsilon != nil {
		eps = *epsilon
	}

	domainVariants := make([]domain.Variant, 0, len(variants))
	for _, v := range variants {
		domainVariants = append(domainVariants, domain.Variant{
			Name:    v.Name,
			Content: v.Content,
		})
	}

	run, err := NewRun(draftID, policy, eps, domainVariants)
	if err != nil {
		return nil, err
	}

	if err := s.runRepo.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save experiment run: %w", err)
	}

	logger.Info("experiment_run_created",
		"trace_id", trace.FromContext(ctx),
		"run_id", run.ID,
		"draft_id", draftID,
		"policy", policy,
		"epsilon", eps,
		"variant_count", len(run.Variants),
	)
	return run, nil
}

// ExecuteRun allocates every active persona judge across the run's variants
// and persists the updated state. Per-judge evaluator failures are reported
// in the step results, never as a top-level error.
func (s *Service) ExecuteRun(ctx context.Context, runID string) (*domain.ExperimentRun, []StepResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("context error: %w", err)
	}

	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("load experiment run: %w", err)
	}
	if run == nil {
		return nil, nil, fmt.Errorf("experiment run %s not found", runID)
	}

	cfg := s.loadConfig(ctx, run.Policy)

	judges, err := s.personaRepo.FindActive(ctx, cfg.MaxJudges)
	if err != nil {
		return nil, nil, fmt.Errorf("load judge personas: %w", err)
	}
	if len(judges) == 0 {
		return nil, nil, fmt.Errorf("no active judge personas")
	}

	tid := trace.FromContext(ctx)
	logger.Debug("experiment_run_start",
		"trace_id", tid,
		"run_id", run.ID,
		"policy", run.Policy,
		"judge_count", len(judges),
	)

	results, err := s.engine.Run(ctx, run, judges, cfg.EvalTimeout)
	if err != nil {
		return nil, nil, err
	}

	// partial progress is always valid and queryable; the save must survive
	// the cancellation that stopped the run
	if err := s.runRepo.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		return nil, nil, fmt.Errorf("save experiment run: %w", err)
	}

	recorded := 0
	for _, r := range results {
		if !r.Skipped {
			recorded++
		}
	}
	logger.Info("experiment_run_done",
		"trace_id", tid,
		"run_id", run.ID,
		"steps", len(results),
		"recorded", recorded,
	)

	return run, results, nil
}

func (s *Service) Stats(ctx context.Context, runID string) ([]domain.VariantStats, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load experiment run: %w", err)
	}
	if run == nil {
		return nil, fmt.Errorf("experiment run %s not found", runID)
	}
	return CurrentStats(run), nil
}

func (s *Service) Winner(ctx context.Context, runID string) (domain.VariantStats, error) {
	run, err := s.runRepo.GetRun(ctx, runID)
	if err != nil {
		return domain.VariantStats{}, fmt.Errorf("load experiment run: %w", err)
	}
	if run == nil {
		return domain.VariantStats{}, fmt.Errorf("experiment run %s not found", runID)
	}
	return Winner(run)
}
