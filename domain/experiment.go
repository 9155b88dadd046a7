package domain

import (
	"time"

	"gorm.io/datatypes"
)

type AllocationPolicy string

const (
	PolicyFixedSplit    AllocationPolicy = "fixed_split"
	PolicyEpsilonGreedy AllocationPolicy = "epsilon_greedy"
)

// Variant is one candidate rewrite inside an experiment run. Running totals
// are owned by the run and mutated only through the engine's record step.
type Variant struct {
	ID         string  `gorm:"column:id;primaryKey" json:"id"`
	RunID      string  `gorm:"column:run_id;index;not null" json:"run_id"`
	Name       string  `gorm:"column:name;not null" json:"name"`
	Content    string  `gorm:"column:content;not null" json:"content"`
	Position   int     `gorm:"column:position;not null" json:"position"`
	TotalScore float64 `gorm:"column:total_score" json:"running_total_score"`
	EvalCount  int     `gorm:"column:eval_count" json:"running_evaluation_count"`
}

// Evaluation is one recorded judge score. Immutable once created; Seq gives
// the total order of recorded evaluations within a run.
type Evaluation struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	RunID     string            `gorm:"column:run_id;index;not null" json:"run_id"`
	VariantID string            `gorm:"column:variant_id;not null" json:"variant_id"`
	JudgeID   string            `gorm:"column:judge_id;not null" json:"judge_id"`
	Score     int               `gorm:"column:score;not null" json:"score"`
	Seq       int               `gorm:"column:seq;not null" json:"sequence_index"`
	Explored  bool              `gorm:"column:explored" json:"explored"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type ExperimentRun struct {
	ID          string           `gorm:"column:id;primaryKey" json:"id"`
	DraftID     uint             `gorm:"column:draft_id;index" json:"draft_id"`
	Policy      AllocationPolicy `gorm:"column:policy;not null" json:"policy"`
	Epsilon     float64          `gorm:"column:epsilon" json:"epsilon"`
	Variants    []Variant        `gorm:"-" json:"variants"`
	Evaluations []Evaluation     `gorm:"-" json:"evaluations"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// VariantStats is the read-only per-variant summary exposed to callers.
type VariantStats struct {
	VariantID  string  `json:"variant_id"`
	Name       string  `json:"name"`
	TotalScore float64 `json:"total_score"`
	EvalCount  int     `json:"eval_count"`
	AvgScore   float64 `json:"avg_score"`
}
