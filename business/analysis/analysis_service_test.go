package analysis

import (
	"context"
	"math"
	"testing"

	"postPilot/business/scoring"
	"postPilot/domain"
)

type stubClassifier struct {
	byText map[string]domain.RawPrediction
}

func (s *stubClassifier) Predict(ctx context.Context, text string) (domain.RawPrediction, error) {
	return s.byText[text], nil
}

type memAnalysisRepo struct {
	byRequestID map[string]domain.Analysis
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{byRequestID: map[string]domain.Analysis{}}
}

func (r *memAnalysisRepo) Save(ctx context.Context, a *domain.Analysis) error {
	r.byRequestID[a.RequestID] = *a
	return nil
}

func (r *memAnalysisRepo) FindByRequestID(ctx context.Context, requestID string) (*domain.Analysis, error) {
	a, ok := r.byRequestID[requestID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func TestEntropy_UniformIsLog2N(t *testing.T) {
	roles := []domain.RoleProbability{
		{Role: "a", Pct: 25}, {Role: "b", Pct: 25},
		{Role: "c", Pct: 25}, {Role: "d", Pct: 25},
	}
	if got := entropy(roles); math.Abs(got-2) > 1e-9 {
		t.Fatalf("uniform 4-way entropy = %v, want 2", got)
	}

	peaked := []domain.RoleProbability{{Role: "a", Pct: 100}, {Role: "b", Pct: 0}}
	if got := entropy(peaked); got > 1e-9 {
		t.Fatalf("peaked entropy = %v, want ~0", got)
	}
}

func TestNarrativeSignals_FlagThreshold(t *testing.T) {
	sigs := narrativeSignals(map[string]float64{
		"burnout":       0.10,
		"toxic_culture": 0.09,
	})
	if !sigs["burnout"].Flag {
		t.Fatalf("prob at threshold must flag")
	}
	if sigs["toxic_culture"].Flag {
		t.Fatalf("prob below threshold must not flag")
	}
}

func TestRuleBasedRisk(t *testing.T) {
	harmful := map[string]domain.NarrativeSignal{
		"elitism": {Prob: 0.4, Flag: true},
		"burnout": {Prob: 0.5, Flag: true},
	}
	if got := ruleBasedRisk(harmful); got != domain.RiskHarmful {
		t.Fatalf("harmful narrative flag should win, got %s", got)
	}

	burnoutOnly := map[string]domain.NarrativeSignal{
		"burnout": {Prob: 0.5, Flag: true},
	}
	if got := ruleBasedRisk(burnoutOnly); got != domain.RiskHarmless {
		t.Fatalf("burnout alone should read Harmless, got %s", got)
	}

	if got := ruleBasedRisk(nil); got != domain.RiskHelpful {
		t.Fatalf("no flags should read Helpful, got %s", got)
	}
}

func TestAnalyze_CorrectsAndDerivesLabels(t *testing.T) {
	classifier := &stubClassifier{byText: map[string]domain.RawPrediction{
		"hello team": {
			Roles: []domain.RoleProbability{
				{Role: "recruiter", Pct: 30},
				{Role: "founder", Pct: 45},
				{Role: "engineer", Pct: 25},
			},
			RiskProbs:  domain.RiskVector{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33},
			Narratives: map[string]float64{"burnout": 0.2},
		},
	}}

	svc := NewService(classifier, nil, nil, scoring.DefaultConfig(), 0)
	a, err := svc.Analyze(context.Background(), "  hello team  ")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.RequestID == "" {
		t.Fatalf("request id not assigned")
	}
	if a.Roles[0].Role != "founder" {
		t.Fatalf("roles not sorted by raw pct: %+v", a.Roles)
	}
	sum := 0.0
	for _, r := range a.Roles {
		sum += r.Pct
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Fatalf("corrected roles sum = %v, want 100", sum)
	}
	if a.Risk.Class != domain.RiskHarmless {
		t.Fatalf("flat risk vector should correct to Harmless, got %s", a.Risk.Class)
	}
	if a.Risk.RuleClass != domain.RiskHarmless {
		t.Fatalf("burnout flag should rule Harmless, got %s", a.Risk.RuleClass)
	}
	if a.Entropy <= 0 {
		t.Fatalf("entropy not derived")
	}
}

func TestGetByRequestID_RoundTrip(t *testing.T) {
	classifier := &stubClassifier{byText: map[string]domain.RawPrediction{
		"hello team": {
			Roles:     []domain.RoleProbability{{Role: "founder", Pct: 60}, {Role: "engineer", Pct: 40}},
			RiskProbs: domain.RiskVector{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33},
		},
	}}
	repo := newMemAnalysisRepo()

	svc := NewService(classifier, repo, nil, scoring.DefaultConfig(), 0)
	saved, err := svc.Analyze(context.Background(), "hello team")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	loaded, err := svc.GetByRequestID(context.Background(), saved.RequestID)
	if err != nil {
		t.Fatalf("GetByRequestID: %v", err)
	}
	if loaded.RequestID != saved.RequestID {
		t.Fatalf("loaded request id %s, want %s", loaded.RequestID, saved.RequestID)
	}
	if loaded.Risk.Class != saved.Risk.Class {
		t.Fatalf("loaded class %s, want %s", loaded.Risk.Class, saved.Risk.Class)
	}

	if _, err := svc.GetByRequestID(context.Background(), "no-such-id"); err == nil {
		t.Fatal("expected error for unknown request id")
	}
	if _, err := svc.GetByRequestID(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty request id")
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	svc := NewService(&stubClassifier{}, nil, nil, scoring.DefaultConfig(), 0)
	if _, err := svc.Analyze(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for whitespace-only text")
	}
}

func TestCompare_Deltas(t *testing.T) {
	classifier := &stubClassifier{byText: map[string]domain.RawPrediction{
		"base": {
			Roles:     []domain.RoleProbability{{Role: "founder", Pct: 60}, {Role: "engineer", Pct: 40}},
			RiskProbs: domain.RiskVector{Helpful: 0.2, Harmless: 0.2, Harmful: 0.6},
		},
		"variant": {
			Roles:     []domain.RoleProbability{{Role: "founder", Pct: 40}, {Role: "engineer", Pct: 60}},
			RiskProbs: domain.RiskVector{Helpful: 0.5, Harmless: 0.4, Harmful: 0.1},
		},
	}}

	svc := NewService(classifier, nil, nil, scoring.DefaultConfig(), 0)
	cmp, err := svc.Compare(context.Background(), "base", "variant")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if cmp.RolePctDelta["founder"] >= 0 {
		t.Fatalf("founder share should drop, delta = %v", cmp.RolePctDelta["founder"])
	}
	if cmp.RolePctDelta["engineer"] <= 0 {
		t.Fatalf("engineer share should rise, delta = %v", cmp.RolePctDelta["engineer"])
	}
	if cmp.RiskProbDelta["Harmful"] >= 0 {
		t.Fatalf("harmful prob should drop, delta = %v", cmp.RiskProbDelta["Harmful"])
	}
}
