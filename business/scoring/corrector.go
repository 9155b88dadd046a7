package scoring

import (
	"math"
	"sort"

	"postPilot/domain"
)

// CorrectRoles amplifies the variance of a compressed role distribution.
//
// The input is sorted descending by pct and truncated to MaxRoles before
// amplification, so "top N" means top N by raw score. Each retained value is
// moved away from the mean by Alpha, floored at EpsilonFloor, then the set
// is renormalized to sum to 100. Output order is the truncation order, not
// a re-sort of the amplified values.
func CorrectRoles(roles []domain.RoleProbability, cfg RoleConfig) ([]domain.RoleProbability, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return []domain.RoleProbability{}, nil
	}

	out := make([]domain.RoleProbability, len(roles))
	copy(out, roles)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pct > out[j].Pct
	})
	if len(out) > cfg.MaxRoles {
		out = out[:cfg.MaxRoles]
	}

	mean := 0.0
	for _, r := range out {
		mean += r.Pct
	}
	mean /= float64(len(out))

	sum := 0.0
	for i := range out {
		v := mean + cfg.Alpha*(out[i].Pct-mean)
		if v < cfg.EpsilonFloor {
			v = cfg.EpsilonFloor
		}
		out[i].Pct = v
		sum += v
	}

	// sum can only reach zero with a zero floor and all-zero input;
	// fall back to a uniform split rather than dividing by zero.
	if sum <= 0 {
		uniform := 100.0 / float64(len(out))
		for i := range out {
			out[i].Pct = uniform
		}
		return out, nil
	}

	for i := range out {
		out[i].Pct = out[i].Pct * 100.0 / sum
	}
	return out, nil
}

// CorrectRisk injects a flatness-aware prior into a 3-class risk vector.
//
// A near-uniform raw vector signals classifier uncertainty on neutral
// content, so mass is shifted toward Harmless; a vector where Harmful
// clearly dominates is trusted and left alone. Inputs are expected to be
// probability-like (each component in [0,1]); callers own that precondition.
func CorrectRisk(v domain.RiskVector, cfg RiskConfig) (domain.RiskVector, domain.RiskClass, error) {
	if err := cfg.Validate(); err != nil {
		return domain.RiskVector{}, "", err
	}

	sum := v.Helpful + v.Harmless + v.Harmful
	if sum <= 0 {
		uniform := domain.RiskVector{Helpful: 1.0 / 3, Harmless: 1.0 / 3, Harmful: 1.0 / 3}
		return uniform, ClassifyRisk(uniform), nil
	}

	spread := maxOf3(v.Helpful, v.Harmless, v.Harmful) - minOf3(v.Helpful, v.Harmless, v.Harmful)
	flatness := (1 - spread) * (1 - spread)

	harmfulDominates := v.Harmful > v.Helpful &&
		v.Harmful > v.Harmless &&
		v.Harmful-math.Max(v.Helpful, v.Harmless) > cfg.DominanceMargin

	corrected := domain.RiskVector{
		Helpful:  v.Helpful,
		Harmless: v.Harmless * (1 + cfg.HarmlessBoost*flatness),
		Harmful:  v.Harmful,
	}
	if !harmfulDominates {
		corrected.Harmful = math.Max(harmfulFloor, v.Harmful*(1-cfg.HarmfulDampening*flatness))
	}

	newSum := corrected.Helpful + corrected.Harmless + corrected.Harmful
	corrected.Helpful /= newSum
	corrected.Harmless /= newSum
	corrected.Harmful /= newSum

	return corrected, ClassifyRisk(corrected), nil
}

// ClassifyRisk picks the strict-maximum component, defaulting to Harmless on
// any tie that is not strictly won. A tie between Helpful and Harmful, or
// any tie involving Harmless, resolves to Harmless.
func ClassifyRisk(v domain.RiskVector) domain.RiskClass {
	switch {
	case v.Harmful > v.Helpful && v.Harmful > v.Harmless:
		return domain.RiskHarmful
	case v.Helpful > v.Harmful && v.Helpful > v.Harmless:
		return domain.RiskHelpful
	default:
		return domain.RiskHarmless
	}
}

// RiskLevelFor maps the maximum corrected probability to a coarse level.
func RiskLevelFor(v domain.RiskVector) domain.RiskLevel {
	maxProb := maxOf3(v.Helpful, v.Harmless, v.Harmful)
	switch {
	case maxProb >= 0.75:
		return domain.RiskLevelHigh
	case maxProb >= 0.55:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

// CorrectAnalysis applies both transforms in place and re-derives every
// label computed from the corrected numbers, so callers never see a stale
// class next to corrected probabilities.
func CorrectAnalysis(a *domain.Analysis, cfg Config) error {
	roles, err := CorrectRoles(a.Roles, cfg.Role)
	if err != nil {
		return err
	}

	probs, class, err := CorrectRisk(a.Risk.Probs, cfg.Risk)
	if err != nil {
		return err
	}

	a.Roles = roles
	a.Risk.Probs = probs
	a.Risk.Class = class
	a.Risk.Level = RiskLevelFor(probs)
	return nil
}

func maxOf3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func minOf3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}
