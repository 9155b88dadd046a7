package postgres

import (
	"context"
	"errors"
	"fmt"

	"postPilot/business/experiment"
	"postPilot/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExperimentRepository struct {
	DB *gorm.DB
}

var _ experiment.RunRepository = (*ExperimentRepository)(nil)

func NewExperimentRepository(db *gorm.DB) *ExperimentRepository {
	return &ExperimentRepository{DB: db}
}

// SaveRun upserts the run row and its variants, then inserts any evaluations
// not yet persisted. Evaluations are append-only: rows already stored for the
// run are never rewritten.
func (r *ExperimentRepository) SaveRun(ctx context.Context, run *domain.ExperimentRun) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"policy",
				"epsilon",
				"updated_at",
			}),
		}).Create(run).Error; err != nil {
			return fmt.Errorf("failed to upsert experiment run: %w", err)
		}

		for i := range run.Variants {
			v := &run.Variants[i]
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"total_score",
					"eval_count",
				}),
			}).Create(v).Error; err != nil {
				return fmt.Errorf("failed to upsert variant %s: %w", v.ID, err)
			}
		}

		var persisted int64
		if err := tx.Model(&domain.Evaluation{}).
			Where("run_id = ?", run.ID).
			Count(&persisted).Error; err != nil {
			return fmt.Errorf("failed to count evaluations: %w", err)
		}

		for i := range run.Evaluations {
			ev := &run.Evaluations[i]
			if ev.Seq < int(persisted) {
				continue
			}
			if err := tx.Create(ev).Error; err != nil {
				return fmt.Errorf("failed to insert evaluation seq %d: %w", ev.Seq, err)
			}
		}

		return nil
	})
}

// GetRun loads a run with its variants ordered by position and evaluations
// ordered by sequence. A missing run returns (nil, nil).
func (r *ExperimentRepository) GetRun(ctx context.Context, id string) (*domain.ExperimentRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var run domain.ExperimentRun
	err := r.DB.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query experiment run: %w", err)
	}

	if err := r.DB.WithContext(ctx).
		Where("run_id = ?", id).
		Order("position ASC").
		Find(&run.Variants).Error; err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}

	if err := r.DB.WithContext(ctx).
		Where("run_id = ?", id).
		Order("seq ASC").
		Find(&run.Evaluations).Error; err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}

	return &run, nil
}
