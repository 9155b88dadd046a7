package domain

import (
	"time"
)

// RoleProbability is one entry of a role distribution. A distribution is
// ordered descending by Pct and keyed by Role; after correction it holds at
// most five entries summing to 100.
type RoleProbability struct {
	Role string  `json:"role"`
	Pct  float64 `json:"pct"`
}

type RiskClass string

const (
	RiskHelpful  RiskClass = "Helpful"
	RiskHarmless RiskClass = "Harmless"
	RiskHarmful  RiskClass = "Harmful"
)

type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

// RiskVector holds the three risk-class probabilities. Helpful + Harmless +
// Harmful sum to 1 both before and after correction.
type RiskVector struct {
	Helpful  float64 `json:"Helpful"`
	Harmless float64 `json:"Harmless"`
	Harmful  float64 `json:"Harmful"`
}

// RiskAssessment pairs the corrected vector with the labels derived from it.
// RuleClass is the narrative-flag rule result kept alongside the model class.
type RiskAssessment struct {
	Class     RiskClass  `json:"risk_class"`
	RuleClass RiskClass  `json:"rule_class"`
	Probs     RiskVector `json:"risk_probs"`
	Level     RiskLevel  `json:"risk_level"`
}

type NarrativeSignal struct {
	Prob float64 `json:"prob"`
	Flag bool    `json:"flag"`
}

// RawPrediction is the untouched classifier output for one text.
type RawPrediction struct {
	Roles      []RoleProbability  `json:"role_distribution_all"`
	RiskProbs  RiskVector         `json:"risk_probs"`
	Narratives map[string]float64 `json:"narrative_probs"`
}

type Analysis struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"column:request_id" json:"request_id"`
	InputText string    `gorm:"column:input_text;not null" json:"input_text"`
	Entropy   float64   `gorm:"column:entropy" json:"confidence_entropy"`
	LatencyMs int64     `gorm:"column:latency_ms" json:"latency_ms"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	RolesRaw      []byte                     `json:"-" gorm:"column:roles"`
	Roles         []RoleProbability          `json:"role_distribution" gorm:"-"`
	RiskRaw       []byte                     `json:"-" gorm:"column:risk"`
	Risk          RiskAssessment             `json:"risk" gorm:"-"`
	NarrativesRaw []byte                     `json:"-" gorm:"column:narratives"`
	Narratives    map[string]NarrativeSignal `json:"narratives" gorm:"-"`
}

// AnalysisComparison holds baseline-vs-variant deltas for the same draft.
type AnalysisComparison struct {
	Baseline      Analysis           `json:"baseline"`
	Variant       Analysis           `json:"variant"`
	RolePctDelta  map[string]float64 `json:"role_pct_delta"`
	RiskProbDelta map[string]float64 `json:"risk_prob_delta"`
}
