package services

import (
	"context"
	"fmt"
	"time"

	"github.com/realmquest/engine/internal/core/domain"
)

// HabitService manages habits and the streak lifecycle. Completion goes
// through the domain state machine; the ledger is only touched when the
// machine reports an actual change.
type HabitService struct {
	habitRepo domain.HabitRepository
	areaRepo  domain.AreaRepository
	profiles  *ProfileService
	clock     domain.Clock
}

func NewHabitService(habitRepo domain.HabitRepository, areaRepo domain.AreaRepository, profiles *ProfileService, clock domain.Clock) *HabitService {
	if clock == nil {
		clock = domain.RealClock()
	}
	return &HabitService{
		habitRepo: habitRepo,
		areaRepo:  areaRepo,
		profiles:  profiles,
		clock:     clock,
	}
}

type CreateHabitInput struct {
	UserID        string
	Title         string
	LinkedAreaID  *string
	XPReward      int
	TargetMinutes *int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Title, input.LinkedAreaID, input.XPReward, input.TargetMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.habitRepo.ListByUserID(ctx, userID)
}

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	return s.habitRepo.Delete(ctx, habitID)
}

// HabitCompletion is what a completion attempt reports back: the habit, the
// ledger snapshot and whether anything was actually awarded.
type HabitCompletion struct {
	Habit   *domain.Habit   `json:"habit"`
	Profile *domain.Profile `json:"profile"`
	Awarded bool            `json:"awarded"`
}

// Complete applies the streak state machine for today and, when the habit
// actually changed, persists it and deposits the reward. Completing a habit
// twice in one day returns the unchanged state with Awarded=false.
func (s *HabitService) Complete(ctx context.Context, userID, habitID string) (*HabitCompletion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	today := s.clock.Now()

	if !habit.Complete(today) {
		profile, err := s.profiles.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &HabitCompletion{Habit: habit, Profile: profile, Awarded: false}, nil
	}

	// Streak change is recorded before any reward, mirroring the quest path.
	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to persist streak: %w", err)
	}

	award := Award{XP: habit.XPReward}
	if habit.LinkedAreaID != nil {
		if area, areaErr := s.areaRepo.GetByID(ctx, *habit.LinkedAreaID); areaErr == nil {
			attr := area.AssociatedAttribute
			award.Attribute = &attr
			award.AttributePoints = domain.AttributeBonus(habit.XPReward)
		}
	}

	profile, err := s.profiles.ApplyAward(ctx, userID, award)
	if err != nil {
		return nil, fmt.Errorf("habit service: failed to award completion: %w", err)
	}

	return &HabitCompletion{Habit: habit, Profile: profile, Awarded: true}, nil
}

// RecomputeStreaks is the passive session-start pass: it zeroes every lapsed
// streak and persists only the habits that changed. Safe to run repeatedly.
func (s *HabitService) RecomputeStreaks(ctx context.Context, userID string) (int, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	today := s.clock.Now()
	reset := 0

	for _, habit := range habits {
		if !habit.RecomputeStreak(today) {
			continue
		}
		if err := s.habitRepo.Update(ctx, habit); err != nil {
			return reset, fmt.Errorf("habit service: failed to persist lapsed streak for %s: %w", habit.ID, err)
		}
		reset++
	}

	return reset, nil
}

// CreateFromChallenge materializes a habit from an accepted friend challenge.
func (s *HabitService) CreateFromChallenge(ctx context.Context, userID string, payload domain.ChallengePayload) (*domain.Habit, error) {
	return s.Create(ctx, CreateHabitInput{
		UserID:   userID,
		Title:    payload.HabitTitle,
		XPReward: payload.XPReward,
	})
}

// Today exposes the service clock's current day, for handlers that report
// completed_today flags.
func (s *HabitService) Today() time.Time {
	return domain.DateOnly(s.clock.Now())
}
