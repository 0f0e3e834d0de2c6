package services

import (
	"context"
	"fmt"

	"github.com/realmquest/engine/internal/core/domain"
)

// ResourceService manages the library of freeform notes. Archiving a resource
// moves it into the hall of fame; no XP is attached to library work.
type ResourceService struct {
	resourceRepo domain.ResourceRepository
	archiveRepo  domain.ArchiveRepository
}

func NewResourceService(resourceRepo domain.ResourceRepository, archiveRepo domain.ArchiveRepository) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		archiveRepo:  archiveRepo,
	}
}

type ResourceInput struct {
	Title   string
	Content string
	Tags    []string
}

func (s *ResourceService) Create(ctx context.Context, userID string, input ResourceInput) (*domain.Resource, error) {
	resource, err := domain.NewResource(userID, input.Title, input.Content, input.Tags)
	if err != nil {
		return nil, err
	}

	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("resource service: failed to create resource: %w", err)
	}

	return resource, nil
}

func (s *ResourceService) List(ctx context.Context, userID string) ([]*domain.Resource, error) {
	return s.resourceRepo.ListByUserID(ctx, userID)
}

func (s *ResourceService) Update(ctx context.Context, userID, resourceID string, input ResourceInput) (*domain.Resource, error) {
	resource, err := s.getOwned(ctx, userID, resourceID)
	if err != nil {
		return nil, err
	}

	if err := resource.Update(input.Title, input.Content, input.Tags); err != nil {
		return nil, err
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, fmt.Errorf("resource service: failed to update resource: %w", err)
	}

	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, userID, resourceID string) error {
	if _, err := s.getOwned(ctx, userID, resourceID); err != nil {
		return err
	}
	return s.resourceRepo.Delete(ctx, resourceID)
}

// Archive writes the resource into the hall of fame and removes it from the
// library. The archive entry survives even if the delete afterwards fails.
func (s *ResourceService) Archive(ctx context.Context, userID, resourceID string) (*domain.ArchiveEntry, error) {
	resource, err := s.getOwned(ctx, userID, resourceID)
	if err != nil {
		return nil, err
	}

	entry, err := domain.NewArchiveEntry(userID, resource.ID, resource.Title, domain.ArchiveTypeResource)
	if err != nil {
		return nil, err
	}

	if err := s.archiveRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("resource service: failed to archive resource: %w", err)
	}

	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		return nil, fmt.Errorf("resource service: failed to remove archived resource: %w", err)
	}

	return entry, nil
}

func (s *ResourceService) getOwned(ctx context.Context, userID, resourceID string) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource.UserID != userID {
		return nil, domain.ErrResourceNotFound
	}
	return resource, nil
}
