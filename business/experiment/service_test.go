package experiment

import (
	"context"
	"fmt"
	"testing"

	"postPilot/domain"
)

type memRunRepo struct {
	runs map[string]*domain.ExperimentRun
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: map[string]*domain.ExperimentRun{}}
}

func (r *memRunRepo) SaveRun(ctx context.Context, run *domain.ExperimentRun) error {
	cp := *run
	cp.Variants = append([]domain.Variant(nil), run.Variants...)
	cp.Evaluations = append([]domain.Evaluation(nil), run.Evaluations...)
	r.runs[run.ID] = &cp
	return nil
}

func (r *memRunRepo) GetRun(ctx context.Context, id string) (*domain.ExperimentRun, error) {
	run, ok := r.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *run
	cp.Variants = append([]domain.Variant(nil), run.Variants...)
	cp.Evaluations = append([]domain.Evaluation(nil), run.Evaluations...)
	return &cp, nil
}

type memPersonaRepo struct {
	personas []domain.Persona
}

func (r *memPersonaRepo) FindActive(ctx context.Context, limit int) ([]domain.Persona, error) {
	if limit > 0 && limit < len(r.personas) {
		return r.personas[:limit], nil
	}
	return r.personas, nil
}

type memConfigRepo struct {
	cfgs map[string]domain.ExperimentConfig
}

func (r *memConfigRepo) GetConfig(ctx context.Context, policy string) (domain.ExperimentConfig, bool, error) {
	cfg, ok := r.cfgs[policy]
	return cfg, ok, nil
}

func (r *memConfigRepo) UpsertConfig(ctx context.Context, cfg domain.ExperimentConfig) error {
	r.cfgs[cfg.Policy] = cfg
	return nil
}

type fixedEvaluator struct {
	score int
}

func (e *fixedEvaluator) Evaluate(ctx context.Context, content string, judge domain.Persona) (int, error) {
	return e.score, nil
}

func newTestService(runRepo RunRepository, personaRepo PersonaRepository, cfgRepo ConfigRepository, eval Evaluator) *Service {
	return NewService(runRepo, personaRepo, nil, cfgRepo, NewEngine(eval, nil), DefaultConfig())
}

func twoVariants() []VariantInput {
	return []VariantInput{
		{Name: "control", Content: "original post"},
		{Name: "rewrite", Content: "rewritten post"},
	}
}

func TestCreateRun_PersistsRun(t *testing.T) {
	runRepo := newMemRunRepo()
	svc := newTestService(runRepo, &memPersonaRepo{}, nil, &fixedEvaluator{score: 50})

	run, err := svc.CreateRun(context.Background(), 0, domain.PolicyFixedSplit, nil, twoVariants())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	stored, err := runRepo.GetRun(context.Background(), run.ID)
	if err != nil || stored == nil {
		t.Fatalf("run not persisted: %v", err)
	}
	if len(stored.Variants) != 2 {
		t.Fatalf("persisted %d variants, want 2", len(stored.Variants))
	}
	for _, v := range stored.Variants {
		if v.EvalCount != 0 || v.TotalScore != 0 {
			t.Fatalf("new run must start with zeroed stats: %+v", v)
		}
	}
}

func TestCreateRun_EpsilonFromConfigRepo(t *testing.T) {
	cfgRepo := &memConfigRepo{cfgs: map[string]domain.ExperimentConfig{
		string(domain.PolicyEpsilonGreedy): {
			Policy:  string(domain.PolicyEpsilonGreedy),
			Epsilon: 0.25,
		},
	}}
	svc := newTestService(newMemRunRepo(), &memPersonaRepo{}, cfgRepo, &fixedEvaluator{score: 50})

	run, err := svc.CreateRun(context.Background(), 0, domain.PolicyEpsilonGreedy, nil, twoVariants())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.Epsilon != 0.25 {
		t.Fatalf("epsilon = %v, want config value 0.25", run.Epsilon)
	}

	// explicit request epsilon wins over the stored config
	eps := 0.5
	run, err = svc.CreateRun(context.Background(), 0, domain.PolicyEpsilonGreedy, &eps, twoVariants())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if run.Epsilon != 0.5 {
		t.Fatalf("epsilon = %v, want request value 0.5", run.Epsilon)
	}
}

func TestExecuteRun_PersistsEvaluations(t *testing.T) {
	runRepo := newMemRunRepo()
	personas := &memPersonaRepo{}
	for i := 0; i < 6; i++ {
		personas.personas = append(personas.personas, domain.Persona{
			ID:   fmt.Sprintf("judge-%d", i),
			Name: fmt.Sprintf("Judge %d", i),
		})
	}
	svc := newTestService(runRepo, personas, nil, &fixedEvaluator{score: 70})

	run, err := svc.CreateRun(context.Background(), 0, domain.PolicyFixedSplit, nil, twoVariants())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	updated, steps, err := svc.ExecuteRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("ExecuteRun: %v", err)
	}
	if len(steps) != 6 {
		t.Fatalf("got %d steps, want 6", len(steps))
	}

	stored, _ := runRepo.GetRun(context.Background(), run.ID)
	if len(stored.Evaluations) != 6 {
		t.Fatalf("persisted %d evaluations, want 6", len(stored.Evaluations))
	}
	for i, v := range stored.Variants {
		if v.EvalCount != 3 {
			t.Fatalf("variant %d eval count = %d, want 3 under fixed split", i, v.EvalCount)
		}
	}
	if updated.Variants[0].TotalScore != 210 {
		t.Fatalf("variant 0 total = %v, want 210", updated.Variants[0].TotalScore)
	}
}

func TestExecuteRun_MaxJudgesFromConfig(t *testing.T) {
	cfgRepo := &memConfigRepo{cfgs: map[string]domain.ExperimentConfig{
		string(domain.PolicyFixedSplit): {
			Policy:    string(domain.PolicyFixedSplit),
			MaxJudges: 4,
		},
	}}
	personas := &memPersonaRepo{}
	for i := 0; i < 10; i++ {
		personas.personas = append(personas.personas, domain.Persona{ID: fmt.Sprintf("judge-%d", i)})
	}
	svc := newTestService(newMemRunRepo(), personas, cfgRepo, &fixedEvaluator{score: 70})

	run, err := svc.CreateRun(context.Background(), 0, domain.PolicyFixedSplit, nil, twoVariants())
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	_, steps, err := svc.ExecuteRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("ExecuteRun: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("got %d steps, want config max_judges 4", len(steps))
	}
}

func TestExecuteRun_UnknownRun(t *testing.T) {
	svc := newTestService(newMemRunRepo(), &memPersonaRepo{}, nil, &fixedEvaluator{score: 50})

	if _, _, err := svc.ExecuteRun(context.Background(), "no-such-run"); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}
