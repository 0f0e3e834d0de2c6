package services

import (
	"context"
	"fmt"

	"github.com/realmquest/engine/internal/core/domain"
)

type AreaService struct {
	areaRepo domain.AreaRepository
}

func NewAreaService(areaRepo domain.AreaRepository) *AreaService {
	return &AreaService{areaRepo: areaRepo}
}

func (s *AreaService) Create(ctx context.Context, userID, title string, attr domain.Attribute) (*domain.Area, error) {
	area, err := domain.NewArea(userID, title, attr)
	if err != nil {
		return nil, err
	}

	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, fmt.Errorf("area service: failed to create area: %w", err)
	}

	return area, nil
}

func (s *AreaService) List(ctx context.Context, userID string) ([]*domain.Area, error) {
	return s.areaRepo.ListByUserID(ctx, userID)
}

func (s *AreaService) Rename(ctx context.Context, userID, areaID, title string) (*domain.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area.UserID != userID {
		return nil, domain.ErrAreaNotFound
	}

	if err := area.Rename(title); err != nil {
		return nil, err
	}

	if err := s.areaRepo.Update(ctx, area); err != nil {
		return nil, fmt.Errorf("area service: failed to update area: %w", err)
	}

	return area, nil
}

func (s *AreaService) Delete(ctx context.Context, userID, areaID string) error {
	area, err := s.areaRepo.GetByID(ctx, areaID)
	if err != nil {
		return err
	}
	if area.UserID != userID {
		return domain.ErrAreaNotFound
	}

	return s.areaRepo.Delete(ctx, areaID)
}
