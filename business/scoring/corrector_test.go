package scoring

import (
	"math"
	"testing"

	"postPilot/domain"
)

func rolesSum(roles []domain.RoleProbability) float64 {
	sum := 0.0
	for _, r := range roles {
		sum += r.Pct
	}
	return sum
}

func TestCorrectRoles_SumAndOrderPreserved(t *testing.T) {
	in := []domain.RoleProbability{
		{Role: "A", Pct: 50},
		{Role: "B", Pct: 30},
		{Role: "C", Pct: 20},
	}

	out, err := CorrectRoles(in, DefaultConfig().Role)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 roles, got %d", len(out))
	}
	if math.Abs(rolesSum(out)-100) > sumTolerance {
		t.Fatalf("corrected pcts sum to %v, want 100", rolesSum(out))
	}

	// order must reflect pre-amplification rank, even if amplification
	// shrinks a gap
	wantOrder := []string{"A", "B", "C"}
	for i, r := range out {
		if r.Role != wantOrder[i] {
			t.Fatalf("position %d: got role %s, want %s", i, r.Role, wantOrder[i])
		}
	}
}

func TestCorrectRoles_TruncatesTopNByRawScore(t *testing.T) {
	in := []domain.RoleProbability{
		{Role: "f", Pct: 2},
		{Role: "a", Pct: 40},
		{Role: "b", Pct: 25},
		{Role: "g", Pct: 1},
		{Role: "c", Pct: 15},
		{Role: "d", Pct: 10},
		{Role: "e", Pct: 7},
	}

	out, err := CorrectRoles(in, DefaultConfig().Role)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 roles after truncation, got %d", len(out))
	}
	for _, r := range out {
		if r.Role == "f" || r.Role == "g" {
			t.Fatalf("role %s should have been truncated", r.Role)
		}
	}
	if math.Abs(rolesSum(out)-100) > sumTolerance {
		t.Fatalf("corrected pcts sum to %v, want 100", rolesSum(out))
	}
}

func TestCorrectRoles_EmptyInput(t *testing.T) {
	out, err := CorrectRoles(nil, DefaultConfig().Role)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d entries", len(out))
	}
}

func TestCorrectRoles_SingleEntry(t *testing.T) {
	out, err := CorrectRoles([]domain.RoleProbability{{Role: "solo", Pct: 37.5}}, DefaultConfig().Role)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 role, got %d", len(out))
	}
	if math.Abs(out[0].Pct-100) > sumTolerance {
		t.Fatalf("single entry should renormalize to 100, got %v", out[0].Pct)
	}
}

func TestCorrectRoles_AllEqualIsUniform(t *testing.T) {
	in := []domain.RoleProbability{
		{Role: "a", Pct: 20},
		{Role: "b", Pct: 20},
		{Role: "c", Pct: 20},
		{Role: "d", Pct: 20},
	}

	out, err := CorrectRoles(in, DefaultConfig().Role)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range out {
		if math.Abs(r.Pct-25) > sumTolerance {
			t.Fatalf("role %s: got %v, want 25", r.Role, r.Pct)
		}
	}
}

func TestCorrectRoles_InvalidConfig(t *testing.T) {
	in := []domain.RoleProbability{{Role: "a", Pct: 50}, {Role: "b", Pct: 50}}

	cfg := DefaultConfig().Role
	cfg.Alpha = -1
	if _, err := CorrectRoles(in, cfg); err == nil {
		t.Fatalf("expected error for negative alpha")
	}

	cfg = DefaultConfig().Role
	cfg.MaxRoles = 0
	if _, err := CorrectRoles(in, cfg); err == nil {
		t.Fatalf("expected error for zero max roles")
	}
}

func TestCorrectRisk_SumInvariant(t *testing.T) {
	inputs := []domain.RiskVector{
		{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33},
		{Helpful: 0.1, Harmless: 0.1, Harmful: 0.8},
		{Helpful: 0.6, Harmless: 0.3, Harmful: 0.1},
		{Helpful: 0.5, Harmless: 0.25, Harmful: 0.25},
	}
	for _, in := range inputs {
		out, _, err := CorrectRisk(in, DefaultConfig().Risk)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum := out.Helpful + out.Harmless + out.Harmful
		if math.Abs(sum-1) > sumTolerance {
			t.Fatalf("input %+v: corrected sum %v, want 1", in, sum)
		}
	}
}

func TestCorrectRisk_ZeroVector(t *testing.T) {
	out, class, err := CorrectRisk(domain.RiskVector{}, DefaultConfig().Risk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third := 1.0 / 3
	if math.Abs(out.Helpful-third) > sumTolerance ||
		math.Abs(out.Harmless-third) > sumTolerance ||
		math.Abs(out.Harmful-third) > sumTolerance {
		t.Fatalf("expected uniform vector, got %+v", out)
	}
	if math.IsNaN(out.Helpful) || math.IsNaN(out.Harmless) || math.IsNaN(out.Harmful) {
		t.Fatalf("zero vector produced NaN: %+v", out)
	}
	if class != domain.RiskHarmless {
		t.Fatalf("uniform vector should classify Harmless, got %s", class)
	}
}

func TestCorrectRisk_DominancePassthrough(t *testing.T) {
	in := domain.RiskVector{Helpful: 0.1, Harmless: 0.1, Harmful: 0.8}

	out, class, err := CorrectRisk(in, DefaultConfig().Risk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != domain.RiskHarmful {
		t.Fatalf("expected Harmful class, got %s", class)
	}
	// Harmful skips dampening: only the harmless boost plus
	// renormalization can move it, and not by much.
	if out.Harmful < 0.75 {
		t.Fatalf("dominant Harmful should stay materially unchanged, got %v", out.Harmful)
	}
}

func TestCorrectRisk_FlatInputHarmlessBias(t *testing.T) {
	in := domain.RiskVector{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33}

	out, class, err := CorrectRisk(in, DefaultConfig().Risk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Harmless <= out.Harmful {
		t.Fatalf("flat input should bias Harmless above Harmful: %+v", out)
	}
	if class != domain.RiskHarmless {
		t.Fatalf("expected Harmless class, got %s", class)
	}
}

func TestCorrectRisk_ConvergesWithoutOscillation(t *testing.T) {
	cfg := DefaultConfig().Risk
	v := domain.RiskVector{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33}

	// Repeated application must move each component monotonically with
	// shrinking step sizes, never flipping direction.
	prev := v
	var prevDelta [3]float64
	for pass := 0; pass < 6; pass++ {
		next, class, err := CorrectRisk(prev, cfg)
		if err != nil {
			t.Fatalf("pass %d: unexpected error: %v", pass, err)
		}
		if class != domain.RiskHarmless {
			t.Fatalf("pass %d: class flipped to %s", pass, class)
		}

		delta := [3]float64{
			next.Helpful - prev.Helpful,
			next.Harmless - prev.Harmless,
			next.Harmful - prev.Harmful,
		}
		if pass > 0 {
			for i := range delta {
				if math.Abs(delta[i]) > math.Abs(prevDelta[i])+sumTolerance {
					t.Fatalf("pass %d: component %d step grew from %v to %v",
						pass, i, prevDelta[i], delta[i])
				}
				if delta[i]*prevDelta[i] < -sumTolerance {
					t.Fatalf("pass %d: component %d oscillated (%v then %v)",
						pass, i, prevDelta[i], delta[i])
				}
			}
		}
		prevDelta = delta
		prev = next
	}
}

func TestClassifyRisk_TieBreaksToHarmless(t *testing.T) {
	cases := []struct {
		in   domain.RiskVector
		want domain.RiskClass
	}{
		{domain.RiskVector{Helpful: 0.4, Harmless: 0.2, Harmful: 0.4}, domain.RiskHarmless},
		{domain.RiskVector{Helpful: 0.4, Harmless: 0.4, Harmful: 0.2}, domain.RiskHarmless},
		{domain.RiskVector{Helpful: 0.2, Harmless: 0.4, Harmful: 0.4}, domain.RiskHarmless},
		{domain.RiskVector{Helpful: 0.5, Harmless: 0.3, Harmful: 0.2}, domain.RiskHelpful},
		{domain.RiskVector{Helpful: 0.2, Harmless: 0.3, Harmful: 0.5}, domain.RiskHarmful},
	}
	for _, c := range cases {
		if got := ClassifyRisk(c.in); got != c.want {
			t.Fatalf("input %+v: got %s, want %s", c.in, got, c.want)
		}
	}
}

func TestCorrectAnalysis_RefreshesDerivedLabels(t *testing.T) {
	a := &domain.Analysis{
		Roles: []domain.RoleProbability{
			{Role: "founder", Pct: 40},
			{Role: "recruiter", Pct: 35},
			{Role: "engineer", Pct: 25},
		},
		Risk: domain.RiskAssessment{
			Class: domain.RiskHarmful, // stale on purpose
			Probs: domain.RiskVector{Helpful: 0.34, Harmless: 0.33, Harmful: 0.33},
		},
	}

	if err := CorrectAnalysis(a, DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Risk.Class != domain.RiskHarmless {
		t.Fatalf("class not recomputed from corrected vector: %s", a.Risk.Class)
	}
	if a.Risk.Level == "" {
		t.Fatalf("risk level not derived")
	}
	if math.Abs(rolesSum(a.Roles)-100) > sumTolerance {
		t.Fatalf("roles sum %v, want 100", rolesSum(a.Roles))
	}
}
