package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"postPilot/business/analysis"
	"postPilot/domain"

	"gorm.io/gorm"
)

type AnalysisRepository struct {
	DB *gorm.DB
}

var _ analysis.AnalysisRepository = (*AnalysisRepository)(nil)

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := packAnalysis(a); err != nil {
		return err
	}

	if err := r.DB.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

func (r *AnalysisRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var a domain.Analysis
	err := r.DB.WithContext(ctx).First(&a, "request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	if err := unpackAnalysis(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// packAnalysis serializes the derived structures into their bytea columns.
func packAnalysis(a *domain.Analysis) error {
	var err error
	if a.RolesRaw, err = json.Marshal(a.Roles); err != nil {
		return fmt.Errorf("failed to marshal roles: %w", err)
	}
	if a.RiskRaw, err = json.Marshal(a.Risk); err != nil {
		return fmt.Errorf("failed to marshal risk: %w", err)
	}
	if a.NarrativesRaw, err = json.Marshal(a.Narratives); err != nil {
		return fmt.Errorf("failed to marshal narratives: %w", err)
	}
	return nil
}

func unpackAnalysis(a *domain.Analysis) error {
	if len(a.RolesRaw) > 0 {
		if err := json.Unmarshal(a.RolesRaw, &a.Roles); err != nil {
			return fmt.Errorf("failed to unmarshal roles: %w", err)
		}
	}
	if len(a.RiskRaw) > 0 {
		if err := json.Unmarshal(a.RiskRaw, &a.Risk); err != nil {
			return fmt.Errorf("failed to unmarshal risk: %w", err)
		}
	}
	if len(a.NarrativesRaw) > 0 {
		if err := json.Unmarshal(a.NarrativesRaw, &a.Narratives); err != nil {
			return fmt.Errorf("failed to unmarshal narratives: %w", err)
		}
	}
	return nil
}
