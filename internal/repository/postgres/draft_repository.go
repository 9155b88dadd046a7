package postgres

import (
	"context"
	"errors"
	"fmt"

	"postPilot/business/draft"
	"postPilot/domain"

	"gorm.io/gorm"
)

type DraftRepository struct {
	DB *gorm.DB
}

var _ draft.DraftRepository = (*DraftRepository)(nil)

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{
		DB: db,
	}
}

func (r *DraftRepository) Create(ctx context.Context, d *domain.Draft) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) FindByID(ctx context.Context, id uint) (domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		return domain.Draft{}, fmt.Errorf("context error: %w", err)
	}

	var d domain.Draft

	err := r.DB.WithContext(ctx).First(&d, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Draft{}, errors.New("draft not found")
		}
		return domain.Draft{}, fmt.Errorf("failed to find draft: %w", err)
	}

	return d, nil
}

func (r *DraftRepository) FindAll(ctx context.Context) ([]domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var drafts []domain.Draft
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find drafts: %w", err)
	}

	return drafts, nil
}

func (r *DraftRepository) Update(ctx context.Context, d *domain.Draft) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"title":   d.Title,
		"content": d.Content,
		"status":  d.Status,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Draft{}).Where("id = ?", d.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("draft not found or already deleted")
	}

	return nil
}

func (r *DraftRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Draft{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("draft not found or already deleted")
	}

	return nil
}

// GetByID satisfies the experiment package's narrower contract.
func (r *DraftRepository) GetByID(ctx context.Context, id uint) (domain.Draft, error) {
	return r.FindByID(ctx, id)
}
