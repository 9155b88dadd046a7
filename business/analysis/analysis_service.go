package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"postPilot/business/scoring"
	"postPilot/domain"
	"postPilot/pkg/logger"
	"postPilot/pkg/trace"

	"github.com/google/uuid"
)

// ---- Collaborator interfaces ----

// Classifier is the upstream ML service, opaque to this package.
type Classifier interface {
	Predict(ctx context.Context, text string) (domain.RawPrediction, error)
}

type AnalysisRepository interface {
	Save(ctx context.Context, a *domain.Analysis) error
	// FindByRequestID returns (nil, nil) when no record matches.
	FindByRequestID(ctx context.Context, requestID string) (*domain.Analysis, error)
}

// Cache stores corrected analyses; Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.Analysis, error)
	Set(ctx context.Context, key string, a *domain.Analysis, ttl time.Duration) error
}

// ---- Usecase / Service ----

type Service struct {
	classifier Classifier
	repo       AnalysisRepository
	cache      Cache
	corrCfg    scoring.Config
	cacheTTL   time.Duration
}

func NewService(
	classifier Classifier,
	repo AnalysisRepository,
	cache Cache,
	corrCfg scoring.Config,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		classifier: classifier,
		repo:       repo,
		cache:      cache,
		corrCfg:    corrCfg,
		cacheTTL:   cacheTTL,
	}
}

// Analyze runs the classifier on a draft text and returns the corrected
// analysis: variance-amplified role distribution, prior-injected risk vector
// and all labels re-derived from the corrected numbers.
func (s *Service) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return domain.Analysis{}, fmt.Errorf("context error: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Analysis{}, errors.New("post text cannot be empty or whitespace")
	}

	key := cacheKey(text)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("analysis cache read failed", "error", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	start := time.Now()

	raw, err := s.classifier.Predict(ctx, text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("classifier predict: %w", err)
	}

	a := domain.Analysis{
		RequestID:  uuid.NewString(),
		InputText:  text,
		Roles:      raw.Roles,
		Risk:       domain.RiskAssessment{Probs: raw.RiskProbs},
		Narratives: narrativeSignals(raw.Narratives),
	}
	// entropy reflects the raw model confidence, before any correction
	a.Entropy = entropy(raw.Roles)

	if err := scoring.CorrectAnalysis(&a, s.corrCfg); err != nil {
		return domain.Analysis{}, err
	}
	a.Risk.RuleClass = ruleBasedRisk(a.Narratives)

	a.LatencyMs = time.Since(start).Milliseconds()

	logger.Debug("analysis_done",
		"trace_id", trace.FromContext(ctx),
		"request_id", a.RequestID,
		"risk_class", a.Risk.Class,
		"risk_level", a.Risk.Level,
		"entropy", a.Entropy,
		"latency_ms", a.LatencyMs,
	)

	if s.repo != nil {
		if err := s.repo.Save(ctx, &a); err != nil {
			return domain.Analysis{}, fmt.Errorf("save analysis: %w", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, &a, s.cacheTTL); err != nil {
			logger.Warn("analysis cache write failed", "error", err)
		}
	}

	return a, nil
}

// GetByRequestID loads a previously persisted analysis.
func (s *Service) GetByRequestID(ctx context.Context, requestID string) (domain.Analysis, error) {
	if requestID == "" {
		return domain.Analysis{}, errors.New("request id is required")
	}
	if s.repo == nil {
		return domain.Analysis{}, errors.New("analysis store not configured")
	}

	a, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("load analysis: %w", err)
	}
	if a == nil {
		return domain.Analysis{}, fmt.Errorf("analysis %s not found", requestID)
	}
	return *a, nil
}

// Compare analyzes a baseline and a rewrite and reports per-role pct deltas
// and per-class risk probability deltas.
func (s *Service) Compare(ctx context.Context, baselineText, variantText string) (domain.AnalysisComparison, error) {
	baseline, err := s.Analyze(ctx, baselineText)
	if err != nil {
		return domain.AnalysisComparison{}, fmt.Errorf("analyze baseline: %w", err)
	}
	variant, err := s.Analyze(ctx, variantText)
	if err != nil {
		return domain.AnalysisComparison{}, fmt.Errorf("analyze variant: %w", err)
	}

	return domain.AnalysisComparison{
		Baseline:      baseline,
		Variant:       variant,
		RolePctDelta:  roleDelta(baseline.Roles, variant.Roles),
		RiskProbDelta: riskDelta(baseline.Risk.Probs, variant.Risk.Probs),
	}, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "analysis:" + hex.EncodeToString(sum[:])
}
