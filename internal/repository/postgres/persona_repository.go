package postgres

import (
	"context"
	"fmt"

	"postPilot/business/experiment"
	"postPilot/domain"

	"gorm.io/gorm"
)

type PersonaRepository struct {
	DB *gorm.DB
}

var _ experiment.PersonaRepository = (*PersonaRepository)(nil)

func NewPersonaRepository(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{DB: db}
}

// FindActive returns active personas in creation order, capped at limit.
func (r *PersonaRepository) FindActive(ctx context.Context, limit int) ([]domain.Persona, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var personas []domain.Persona
	if err := q.Find(&personas).Error; err != nil {
		return nil, fmt.Errorf("failed to find active personas: %w", err)
	}

	return personas, nil
}

func (r *PersonaRepository) Create(ctx context.Context, p *domain.Persona) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create persona: %w", err)
	}

	return nil
}
