package experiment

import (
	"context"
	"time"

	"postPilot/domain"
)

type Config struct {
	Epsilon     float64
	MaxJudges   int
	EvalTimeout time.Duration
}

const (
	defaultEpsilon         = 0.1
	defaultMaxJudges       = 50
	defaultEvalTimeoutSecs = 30
)

func DefaultConfig() Config {
	return Config{
		Epsilon:     defaultEpsilon,
		MaxJudges:   defaultMaxJudges,
		EvalTimeout: defaultEvalTimeoutSecs * time.Second,
	}
}

// read per-policy defaults from DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, policy string) (domain.ExperimentConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.ExperimentConfig) error
}

// loadConfig reads the (policy) row from the repo, falling back to the
// compiled-in defaults for anything missing.
func (s *Service) loadConfig(ctx context.Context, policy domain.AllocationPolicy) Config {
	if s.cfgRepo == nil {
		return s.defaultCfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, string(policy))
	if err != nil || !ok {
		return s.defaultCfg
	}

	cfg := s.defaultCfg
	if dbCfg.Epsilon >= 0 && dbCfg.Epsilon <= 1 {
		cfg.Epsilon = dbCfg.Epsilon
	}
	if dbCfg.MaxJudges > 0 {
		cfg.MaxJudges = dbCfg.MaxJudges
	}
	if dbCfg.EvalTimeoutSecs > 0 {
		cfg.EvalTimeout = time.Duration(dbCfg.EvalTimeoutSecs) * time.Second
	}
	return cfg
}
