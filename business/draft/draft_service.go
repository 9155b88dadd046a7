package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postPilot/domain"
	"postPilot/pkg/logger"
)

// DraftRepository contract interface
type DraftRepository interface {
	Create(ctx context.Context, draft *domain.Draft) error
	FindByID(ctx context.Context, id uint) (domain.Draft, error)
	FindAll(ctx context.Context) ([]domain.Draft, error)
	Update(ctx context.Context, draft *domain.Draft) error
	Delete(ctx context.Context, id uint) error
}

var validStatuses = map[string]bool{
	"draft":    true,
	"approved": true,
	"shipped":  true,
}

type draftService struct {
	draftRepo DraftRepository
}

func NewDraftService(draftRepo DraftRepository) *draftService {
	return &draftService{
		draftRepo: draftRepo,
	}
}

func (s *draftService) GetAllDrafts(ctx context.Context) ([]domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing drafts")
		return nil, fmt.Errorf("context error: %w", err)
	}

	drafts, err := s.draftRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list drafts", err)
		return nil, err
	}

	return drafts, nil
}

func (s *draftService) GetDraftByID(ctx context.Context, id uint) (*domain.Draft, error) {
	if id == 0 {
		logger.Error("invalid draft id")
		return nil, errors.New("invalid draft id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when fetching draft")
		return nil, fmt.Errorf("context error: %w", err)
	}

	draft, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find draft by id", err.Error())
		return nil, err
	}

	return &draft, nil
}

func (s *draftService) CreateDraft(ctx context.Context, draft *domain.Draft) (*domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating draft")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if strings.TrimSpace(draft.Title) == "" {
		logger.Error("invalid draft data: title is required")
		return nil, errors.New("draft title is required")
	}

	if strings.TrimSpace(draft.Content) == "" {
		logger.Error("invalid draft data: content is required")
		return nil, errors.New("draft content is required")
	}

	if draft.Status == "" {
		draft.Status = "draft"
	}
	if !validStatuses[draft.Status] {
		logger.Error("invalid draft data: unknown status", draft.Status)
		return nil, fmt.Errorf("unknown draft status %q", draft.Status)
	}

	if err := s.draftRepo.Create(ctx, draft); err != nil {
		logger.Error("failed to create new draft", err)
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	logger.Info("draft created successfully", "draft_id", draft.ID)

	return draft, nil
}

func (s *draftService) UpdateDraft(ctx context.Context, draft *domain.Draft) (*domain.Draft, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating draft")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if draft.ID == 0 {
		logger.Error("invalid draft data: ID is required")
		return nil, errors.New("draft ID is required")
	}

	if strings.TrimSpace(draft.Title) == "" {
		logger.Error("invalid draft data: title is required")
		return nil, errors.New("draft title is required")
	}

	if strings.TrimSpace(draft.Content) == "" {
		logger.Error("invalid draft data: content is required")
		return nil, errors.New("draft content is required")
	}

	if !validStatuses[draft.Status] {
		logger.Error("invalid draft data: unknown status", draft.Status)
		return nil, fmt.Errorf("unknown draft status %q", draft.Status)
	}

	// Verify draft exists
	if _, err := s.draftRepo.FindByID(ctx, draft.ID); err != nil {
		logger.Error("draft not found", err)
		return nil, errors.New("draft not found")
	}

	if err := s.draftRepo.Update(ctx, draft); err != nil {
		logger.Error("failed to update draft", err)
		return nil, fmt.Errorf("failed to update draft: %w", err)
	}

	updated, err := s.draftRepo.FindByID(ctx, draft.ID)
	if err != nil {
		logger.Error("failed to fetch updated draft", err)
		return nil, fmt.Errorf("failed to fetch updated draft: %w", err)
	}

	logger.Info("draft updated successfully", "draft_id", updated.ID)

	return &updated, nil
}

func (s *draftService) DeleteDraft(ctx context.Context, id uint) error {
	if id == 0 {
		logger.Error("invalid draft id when deleting draft")
		return errors.New("invalid draft id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting draft")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify draft exists
	if _, err := s.draftRepo.FindByID(ctx, id); err != nil {
		logger.Error("draft not found", err)
		return errors.New("draft not found")
	}

	if err := s.draftRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete draft", err)
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	logger.Info("draft deleted successfully", "draft_id", id)

	return nil
}
