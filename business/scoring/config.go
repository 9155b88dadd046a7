package scoring

import "fmt"

type RoleConfig struct {
	// Alpha scales each value's deviation from the mean.
	Alpha        float64
	EpsilonFloor float64
	MaxRoles     int
}

type RiskConfig struct {
	HarmlessBoost    float64
	HarmfulDampening float64
	DominanceMargin  float64
}

type Config struct {
	Role RoleConfig
	Risk RiskConfig
}

const (
	defaultAlpha            = 2.5
	defaultEpsilonFloor     = 0.01
	defaultMaxRoles         = 5
	defaultHarmlessBoost    = 1.5
	defaultHarmfulDampening = 0.6
	defaultDominanceMargin  = 0.15

	// harmfulFloor keeps the dampened Harmful component away from zero.
	harmfulFloor = 0.01

	sumTolerance = 1e-6
)

func DefaultConfig() Config {
	return Config{
		Role: RoleConfig{
			Alpha:        defaultAlpha,
			EpsilonFloor: defaultEpsilonFloor,
			MaxRoles:     defaultMaxRoles,
		},
		Risk: RiskConfig{
			HarmlessBoost:    defaultHarmlessBoost,
			HarmfulDampening: defaultHarmfulDampening,
			DominanceMargin:  defaultDominanceMargin,
		},
	}
}

// Validate rejects out-of-range values instead of clamping them, so callers
// always get the behavior they configured.
func (c RoleConfig) Validate() error {
	if c.Alpha < 0 {
		return fmt.Errorf("invalid role config: alpha must be >= 0, got %v", c.Alpha)
	}
	if c.EpsilonFloor < 0 {
		return fmt.Errorf("invalid role config: epsilon floor must be >= 0, got %v", c.EpsilonFloor)
	}
	if c.MaxRoles < 1 {
		return fmt.Errorf("invalid role config: max roles must be >= 1, got %d", c.MaxRoles)
	}
	return nil
}

func (c RiskConfig) Validate() error {
	if c.HarmlessBoost < 0 {
		return fmt.Errorf("invalid risk config: harmless boost must be >= 0, got %v", c.HarmlessBoost)
	}
	if c.HarmfulDampening < 0 || c.HarmfulDampening > 1 {
		return fmt.Errorf("invalid risk config: harmful dampening must be in [0,1], got %v", c.HarmfulDampening)
	}
	if c.DominanceMargin < 0 {
		return fmt.Errorf("invalid risk config: dominance margin must be >= 0, got %v", c.DominanceMargin)
	}
	return nil
}
