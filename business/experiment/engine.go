package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"postPilot/domain"
	"postPilot/pkg/logger"
	"postPilot/pkg/trace"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Evaluator scores one content variant from the point of view of one judge
// persona. Implementations own transport, prompting and rate limiting; the
// engine only relies on the contract: a score in [0,100] or an error it can
// skip.
type Evaluator interface {
	Evaluate(ctx context.Context, variantContent string, judge domain.Persona) (int, error)
}

// Engine drives the allocation loop for one run at a time. Allocation is
// strictly sequential per run: each epsilon-greedy step must see the stats
// left by the previous step, so judges are never evaluated in parallel
// within a run.
type Engine struct {
	evaluator Evaluator
	rng       *rand.Rand
}

// NewEngine builds an engine around an evaluator and a random source. The
// rng is injected so tests can drive deterministic explore/exploit branches;
// a nil rng falls back to a time-seeded one.
func NewEngine(evaluator Evaluator, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		evaluator: evaluator,
		rng:       rng,
	}
}

// StepResult reports the outcome of one (judge, variant) step. Skipped steps
// carry the evaluator error as a soft-failure marker; they never abort the
// run.
type StepResult struct {
	JudgeID   string `json:"judge_id"`
	VariantID string `json:"variant_id"`
	Score     int    `json:"score"`
	Explored  bool   `json:"explored"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// NewRun builds a run with zeroed variant stats. Structural problems are
// construction-time failures, not deferred to the first step.
func NewRun(draftID uint, policy domain.AllocationPolicy, epsilon float64, variants []domain.Variant) (*domain.ExperimentRun, error) {
	switch policy {
	case domain.PolicyFixedSplit, domain.PolicyEpsilonGreedy:
	default:
		return nil, fmt.Errorf("unknown allocation policy: %s", policy)
	}
	if len(variants) < 2 {
		return nil, fmt.Errorf("experiment run needs at least 2 variants, got %d", len(variants))
	}
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("epsilon must be in [0,1], got %v", epsilon)
	}

	run := &domain.ExperimentRun{
		ID:          uuid.NewString(),
		DraftID:     draftID,
		Policy:      policy,
		Epsilon:     epsilon,
		Variants:    make([]domain.Variant, len(variants)),
		Evaluations: []domain.Evaluation{},
	}
	for i, v := range variants {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		v.RunID = run.ID
		v.Position = i
		v.TotalScore = 0
		v.EvalCount = 0
		run.Variants[i] = v
	}
	return run, nil
}

// AllocateStep picks the variant index for the judge at judgeIdx (0-based,
// supplied order) out of judgeCount judges. The second return value marks an
// explore pick.
//
// FixedSplit partitions judges into ceil(J/V)-sized contiguous blocks, so
// early variants may get one extra judge when J is not divisible by V.
// EpsilonGreedy explores with probability epsilon (uniform over all
// variants, leader included) and otherwise exploits the best running average
// accumulated strictly before this step, falling back to explore while no
// evaluation has been recorded at all.
func (e *Engine) AllocateStep(run *domain.ExperimentRun, judgeIdx, judgeCount int) (int, bool, error) {
	if judgeCount <= 0 {
		return 0, false, fmt.Errorf("judge count must be positive, got %d", judgeCount)
	}
	numVariants := len(run.Variants)

	switch run.Policy {
	case domain.PolicyFixedSplit:
		block := (judgeCount + numVariants - 1) / numVariants
		return (judgeIdx / block) % numVariants, false, nil

	case domain.PolicyEpsilonGreedy:
		if e.rng.Float64() < run.Epsilon {
			return e.rng.Intn(numVariants), true, nil
		}
		if len(run.Evaluations) == 0 {
			return e.rng.Intn(numVariants), true, nil
		}
		best := 0
		bestAvg := avgScore(run.Variants[0])
		for i := 1; i < numVariants; i++ {
			if avg := avgScore(run.Variants[i]); avg > bestAvg {
				best = i
				bestAvg = avg
			}
		}
		return best, false, nil

	default:
		return 0, false, fmt.Errorf("unknown allocation policy: %s", run.Policy)
	}
}

// Run walks the judges in supplied order, one evaluator call per judge.
// Evaluator failures are skipped without touching run state; cancellation
// stops further evaluator calls while keeping everything already recorded.
// evalTimeout bounds each evaluator call when positive.
func (e *Engine) Run(ctx context.Context, run *domain.ExperimentRun, judges []domain.Persona, evalTimeout time.Duration) ([]StepResult, error) {
	tid := trace.FromContext(ctx)
	results := make([]StepResult, 0, len(judges))

	for i, judge := range judges {
		if err := ctx.Err(); err != nil {
			logger.Debug("experiment_run_cancelled",
				"trace_id", tid,
				"run_id", run.ID,
				"completed_steps", len(results),
			)
			break
		}

		idx, explored, err := e.AllocateStep(run, i, len(judges))
		if err != nil {
			return results, err
		}
		variant := &run.Variants[idx]

		score, err := e.evaluate(ctx, variant.Content, judge, evalTimeout)
		if err == nil && (score < 0 || score > 100) {
			err = fmt.Errorf("evaluator score %d out of [0,100]", score)
		}
		if err != nil {
			EvaluationsTotal.WithLabelValues(string(run.Policy), "skipped").Inc()
			logger.Debug("experiment_step_skipped",
				"trace_id", tid,
				"run_id", run.ID,
				"judge_id", judge.ID,
				"variant_id", variant.ID,
				"error", err,
			)
			results = append(results, StepResult{
				JudgeID:   judge.ID,
				VariantID: variant.ID,
				Explored:  explored,
				Skipped:   true,
				Error:     err.Error(),
			})
			continue
		}

		recordEvaluation(run, idx, judge, score, explored, tid)

		outcome := "exploit"
		if explored {
			outcome = "explore"
		}
		EvaluationsTotal.WithLabelValues(string(run.Policy), outcome).Inc()

		results = append(results, StepResult{
			JudgeID:   judge.ID,
			VariantID: variant.ID,
			Score:     score,
			Explored:  explored,
		})
	}

	return results, nil
}

func (e *Engine) evaluate(ctx context.Context, content string, judge domain.Persona, timeout time.Duration) (int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return e.evaluator.Evaluate(ctx, content, judge)
}

// recordEvaluation is the single place run state is mutated: it appends the
// evaluation with the next sequence index and bumps the variant's running
// totals immediately, so the next step's exploit calculation sees it.
func recordEvaluation(run *domain.ExperimentRun, variantIdx int, judge domain.Persona, score int, explored bool, traceID string) {
	v := &run.Variants[variantIdx]
	v.TotalScore += float64(score)
	v.EvalCount++

	run.Evaluations = append(run.Evaluations, domain.Evaluation{
		RunID:     run.ID,
		VariantID: v.ID,
		JudgeID:   judge.ID,
		Score:     score,
		Seq:       len(run.Evaluations),
		Explored:  explored,
		Context: datatypes.JSONMap{
			"judge_name": judge.Name,
			"explored":   explored,
			"trace_id":   traceID,
		},
		CreatedAt: time.Now(),
	})
}

func avgScore(v domain.Variant) float64 {
	if v.EvalCount == 0 {
		return 0
	}
	return v.TotalScore / float64(v.EvalCount)
}
