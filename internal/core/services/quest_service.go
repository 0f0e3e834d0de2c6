package services

import (
	"context"
	"fmt"
	"time"

	"github.com/realmquest/engine/internal/core/domain"
)

// QuestService manages projects and runs the completion sequence: mark
// complete, archive, award XP, award attribute points. The completion flag is
// written first, so a failure later in the sequence can leave a completed but
// unrewarded quest, never a rewarded incomplete one.
type QuestService struct {
	projectRepo domain.ProjectRepository
	areaRepo    domain.AreaRepository
	archiveRepo domain.ArchiveRepository
	profiles    *ProfileService
}

func NewQuestService(projectRepo domain.ProjectRepository, areaRepo domain.AreaRepository, archiveRepo domain.ArchiveRepository, profiles *ProfileService) *QuestService {
	return &QuestService{
		projectRepo: projectRepo,
		areaRepo:    areaRepo,
		archiveRepo: archiveRepo,
		profiles:    profiles,
	}
}

type CreateQuestInput struct {
	UserID       string
	Title        string
	Difficulty   domain.Difficulty
	LinkedAreaID *string
	Deadline     *time.Time
	Milestones   []string
}

func (s *QuestService) Create(ctx context.Context, input CreateQuestInput) (*domain.Project, error) {
	project, err := domain.NewProject(input.UserID, input.Title, input.Difficulty, input.LinkedAreaID, input.Deadline, input.Milestones)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("quest service: failed to create project: %w", err)
	}

	return project, nil
}

func (s *QuestService) ListActive(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projectRepo.ListActiveByUserID(ctx, userID)
}

func (s *QuestService) Delete(ctx context.Context, userID, projectID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return domain.ErrProjectNotFound
	}

	return s.projectRepo.Delete(ctx, projectID)
}

// Complete runs the quest completion sequence and returns the updated ledger.
// Completing a quest that is already done (or missing) reports the sentinel
// error and changes nothing.
func (s *QuestService) Complete(ctx context.Context, userID, projectID string) (*domain.Profile, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}

	if err := project.MarkCompleted(); err != nil {
		return nil, err
	}

	// Durable completion first.
	if err := s.projectRepo.MarkCompleted(ctx, projectID); err != nil {
		return nil, fmt.Errorf("quest service: failed to mark project complete: %w", err)
	}

	entry, err := domain.NewArchiveEntry(userID, project.ID, project.Title, domain.ArchiveTypeProject)
	if err != nil {
		return nil, err
	}
	if err := s.archiveRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("quest service: failed to archive project: %w", err)
	}

	award := Award{XP: project.XPReward}
	if project.LinkedAreaID != nil {
		if area, areaErr := s.areaRepo.GetByID(ctx, *project.LinkedAreaID); areaErr == nil {
			attr := area.AssociatedAttribute
			award.Attribute = &attr
			award.AttributePoints = domain.AttributeBonus(project.XPReward)
		}
	}

	profile, err := s.profiles.ApplyAward(ctx, userID, award)
	if err != nil {
		return nil, fmt.Errorf("quest service: failed to award completion: %w", err)
	}

	return profile, nil
}

// ToggleMilestone flips a milestone and pays the flat milestone XP on every
// transition into done. Unchecking never claws anything back.
func (s *QuestService) ToggleMilestone(ctx context.Context, userID, milestoneID string) (*domain.Milestone, *domain.Profile, error) {
	milestone, err := s.projectRepo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, milestone.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project.UserID != userID {
		return nil, nil, domain.ErrMilestoneNotFound
	}

	newValue := !milestone.IsDone
	updated, err := s.projectRepo.SetMilestoneDone(ctx, milestoneID, newValue)
	if err != nil {
		return nil, nil, fmt.Errorf("quest service: failed to toggle milestone: %w", err)
	}

	if !newValue {
		profile, err := s.profiles.Get(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
		return updated, profile, nil
	}

	profile, err := s.profiles.ApplyAward(ctx, userID, Award{XP: domain.MilestoneXP})
	if err != nil {
		return nil, nil, fmt.Errorf("quest service: failed to award milestone: %w", err)
	}

	return updated, profile, nil
}
