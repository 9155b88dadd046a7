package postgres

import (
	"context"

	"postPilot/business/experiment"
	"postPilot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExperimentConfigRepository struct {
	DB *gorm.DB
}

var _ experiment.ConfigRepository = (*ExperimentConfigRepository)(nil)

func NewExperimentConfigRepository(db *gorm.DB) *ExperimentConfigRepository {
	return &ExperimentConfigRepository{DB: db}
}

func (r *ExperimentConfigRepository) GetConfig(ctx context.Context, policy string) (domain.ExperimentConfig, bool, error) {
	var cfg domain.ExperimentConfig

	err := r.DB.WithContext(ctx).
		Where("policy = ?", policy).
		First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return domain.ExperimentConfig{}, false, nil
	}
	if err != nil {
		return domain.ExperimentConfig{}, false, err
	}

	return cfg, true, nil
}

func (r *ExperimentConfigRepository) UpsertConfig(ctx context.Context, cfg domain.ExperimentConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "policy"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"epsilon",
				"max_judges",
				"eval_timeout_secs",
			}),
		}).
		Create(&cfg).Error
}
