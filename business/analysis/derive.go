package analysis

import (
	"math"

	"postPilot/domain"
)

const narrativeFlagThreshold = 0.10

// narrative labels treated as harmful signals by the rule-based classifier
var harmfulNarratives = map[string]bool{
	"toxic_culture":         true,
	"elitism":               true,
	"credibility_overclaim": true,
	"culture_misalignment":  true,
}

// entropy measures classifier confidence over the role distribution in bits.
// Probabilities are clipped at 1e-12 before the log to keep zero entries
// from producing -Inf.
func entropy(roles []domain.RoleProbability) float64 {
	sum := 0.0
	for _, r := range roles {
		sum += r.Pct
	}
	if sum <= 0 {
		return 0
	}

	h := 0.0
	for _, r := range roles {
		p := r.Pct / sum
		if p < 1e-12 {
			p = 1e-12
		}
		h -= p * math.Log2(p)
	}
	return h
}

func narrativeSignals(probs map[string]float64) map[string]domain.NarrativeSignal {
	out := make(map[string]domain.NarrativeSignal, len(probs))
	for label, p := range probs {
		out[label] = domain.NarrativeSignal{
			Prob: p,
			Flag: p >= narrativeFlagThreshold,
		}
	}
	return out
}

// ruleBasedRisk classifies from flagged narratives alone, independent of the
// risk model: any harmful narrative flag wins, burnout alone reads Harmless.
func ruleBasedRisk(narratives map[string]domain.NarrativeSignal) domain.RiskClass {
	for label, sig := range narratives {
		if sig.Flag && harmfulNarratives[label] {
			return domain.RiskHarmful
		}
	}
	if sig, ok := narratives["burnout"]; ok && sig.Flag {
		return domain.RiskHarmless
	}
	return domain.RiskHelpful
}

// roleDelta reports variant minus baseline pct per role present in the
// baseline; roles missing from the variant count as 0.
func roleDelta(baseline, variant []domain.RoleProbability) map[string]float64 {
	variantByRole := make(map[string]float64, len(variant))
	for _, r := range variant {
		variantByRole[r.Role] = r.Pct
	}

	out := make(map[string]float64, len(baseline))
	for _, r := range baseline {
		out[r.Role] = variantByRole[r.Role] - r.Pct
	}
	return out
}

func riskDelta(baseline, variant domain.RiskVector) map[string]float64 {
	return map[string]float64{
		"Helpful":  variant.Helpful - baseline.Helpful,
		"Harmless": variant.Harmless - baseline.Harmless,
		"Harmful":  variant.Harmful - baseline.Harmful,
	}
}
