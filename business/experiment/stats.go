package experiment

import (
	"fmt"

	"postPilot/domain"
)

// CurrentStats summarizes running totals per variant in original variant
// order. A variant with no evaluations reports an average of 0, not NaN.
func CurrentStats(run *domain.ExperimentRun) []domain.VariantStats {
	stats := make([]domain.VariantStats, 0, len(run.Variants))
	for _, v := range run.Variants {
		stats = append(stats, domain.VariantStats{
			VariantID:  v.ID,
			Name:       v.Name,
			TotalScore: v.TotalScore,
			EvalCount:  v.EvalCount,
			AvgScore:   avgScore(v),
		})
	}
	return stats
}

// Winner returns the variant with the highest average score. Ties go to the
// variant that appears first in the original ordering.
func Winner(run *domain.ExperimentRun) (domain.VariantStats, error) {
	if len(run.Variants) == 0 {
		return domain.VariantStats{}, fmt.Errorf("run %s has no variants", run.ID)
	}

	best := run.Variants[0]
	bestAvg := avgScore(best)
	for _, v := range run.Variants[1:] {
		if avg := avgScore(v); avg > bestAvg {
			best = v
			bestAvg = avg
		}
	}

	return domain.VariantStats{
		VariantID:  best.ID,
		Name:       best.Name,
		TotalScore: best.TotalScore,
		EvalCount:  best.EvalCount,
		AvgScore:   bestAvg,
	}, nil
}
