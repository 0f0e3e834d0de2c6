package services

import (
	"context"

	"github.com/realmquest/engine/internal/core/domain"
)

// ArchiveService is read-only: entries are appended by the completion paths
// and never changed afterwards.
type ArchiveService struct {
	archiveRepo domain.ArchiveRepository
}

func NewArchiveService(archiveRepo domain.ArchiveRepository) *ArchiveService {
	return &ArchiveService{archiveRepo: archiveRepo}
}

func (s *ArchiveService) List(ctx context.Context, userID string) ([]*domain.ArchiveEntry, error) {
	return s.archiveRepo.ListByUserID(ctx, userID)
}
