package domain

// ExperimentConfig is the per-policy default stored in Postgres, overriding
// the compiled-in defaults when present.
type ExperimentConfig struct {
	Policy          string  `json:"policy" gorm:"column:policy;primaryKey"`
	Epsilon         float64 `json:"epsilon" gorm:"column:epsilon"`
	MaxJudges       int     `json:"max_judges" gorm:"column:max_judges"`
	EvalTimeoutSecs int     `json:"eval_timeout_secs" gorm:"column:eval_timeout_secs"`
}
