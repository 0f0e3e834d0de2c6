package services_test

import (
	"context"
	"testing"

	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type habitFixture struct {
	habits   *services.HabitService
	profiles *services.ProfileService

	habitRepo   *mockHabitRepo
	areaRepo    *mockAreaRepo
	profileRepo *mockProfileRepo
}

func newHabitFixture(t *testing.T, today string) *habitFixture {
	t.Helper()

	habitRepo := newMockHabitRepo()
	areaRepo := newMockAreaRepo()
	profileRepo := newMockProfileRepo()
	userRepo := newMockUserRepo()

	profile, err := domain.NewProfile("u1", "alice")
	require.NoError(t, err)
	require.NoError(t, profileRepo.Create(context.Background(), profile))

	profiles := services.NewProfileService(profileRepo, areaRepo, userRepo)
	habits := services.NewHabitService(habitRepo, areaRepo, profiles, fixedClock{now: day(today)})

	return &habitFixture{
		habits:      habits,
		profiles:    profiles,
		habitRepo:   habitRepo,
		areaRepo:    areaRepo,
		profileRepo: profileRepo,
	}
}

func (f *habitFixture) createArea(t *testing.T, attr domain.Attribute) *domain.Area {
	t.Helper()
	area, err := domain.NewArea("u1", "Test Realm", attr)
	require.NoError(t, err)
	require.NoError(t, f.areaRepo.Create(context.Background(), area))
	return area
}

func TestHabitService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("First completion awards XP and attribute bonus", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")
		area := f.createArea(t, domain.AttributeStrength)

		habit, err := f.habits.Create(ctx, services.CreateHabitInput{
			UserID:       "u1",
			Title:        "Morning run",
			LinkedAreaID: &area.ID,
			XPReward:     50,
		})
		require.NoError(t, err)

		result, err := f.habits.Complete(ctx, "u1", habit.ID)

		require.NoError(t, err)
		assert.True(t, result.Awarded)
		assert.Equal(t, 1, result.Habit.Streak)
		assert.Equal(t, 50, result.Profile.CurrentXP)
		assert.Equal(t, 12, result.Profile.Strength, "floor(50*0.25)")
	})

	t.Run("Second completion same day is a no-op for the ledger", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		habit, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: "u1", Title: "Read"})
		require.NoError(t, err)

		first, err := f.habits.Complete(ctx, "u1", habit.ID)
		require.NoError(t, err)
		require.True(t, first.Awarded)

		second, err := f.habits.Complete(ctx, "u1", habit.ID)

		require.NoError(t, err)
		assert.False(t, second.Awarded)
		assert.Equal(t, first.Habit.Streak, second.Habit.Streak)
		assert.Equal(t, first.Profile.CurrentXP, second.Profile.CurrentXP)
	})

	t.Run("Unlinked habit awards global XP only", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		habit, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: "u1", Title: "Meditate", XPReward: 10})
		require.NoError(t, err)

		result, err := f.habits.Complete(ctx, "u1", habit.ID)

		require.NoError(t, err)
		assert.Equal(t, 10, result.Profile.CurrentXP)
		assert.Equal(t, 0, result.Profile.Strength)
		assert.Equal(t, 0, result.Profile.Intellect)
		assert.Equal(t, 0, result.Profile.Charisma)
		assert.Equal(t, 0, result.Profile.Wealth)
	})

	t.Run("Consecutive-day completion continues the streak", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		habit, err := f.habits.Create(ctx, services.CreateHabitInput{UserID: "u1", Title: "Read"})
		require.NoError(t, err)

		stored, _ := f.habitRepo.GetByID(ctx, habit.ID)
		stored.Streak = 5
		stored.BestStreak = 5
		stored.LastCompletedDate = ptr(day("2026-08-31"))
		require.NoError(t, f.habitRepo.Update(ctx, stored))

		result, err := f.habits.Complete(ctx, "u1", habit.ID)

		require.NoError(t, err)
		assert.Equal(t, 6, result.Habit.Streak)
		assert.Equal(t, 6, result.Habit.BestStreak)
	})

	t.Run("Error: habit owned by someone else", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		other, err := domain.NewHabit("u2", "Their habit", nil, 0, nil)
		require.NoError(t, err)
		require.NoError(t, f.habitRepo.Create(ctx, other))

		_, err = f.habits.Complete(ctx, "u1", other.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Error: missing habit", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")
		_, err := f.habits.Complete(ctx, "u1", "nope")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestHabitService_RecomputeStreaks(t *testing.T) {
	ctx := context.Background()

	t.Run("Lapsed streaks zeroed, live ones kept", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		lapsed, _ := domain.NewHabit("u1", "Lapsed", nil, 0, nil)
		lapsed.Streak = 4
		lapsed.BestStreak = 4
		lapsed.LastCompletedDate = ptr(day("2026-08-25"))
		require.NoError(t, f.habitRepo.Create(ctx, lapsed))

		alive, _ := domain.NewHabit("u1", "Alive", nil, 0, nil)
		alive.Streak = 2
		alive.BestStreak = 2
		alive.LastCompletedDate = ptr(day("2026-08-31"))
		require.NoError(t, f.habitRepo.Create(ctx, alive))

		reset, err := f.habits.RecomputeStreaks(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, 1, reset)

		gotLapsed, _ := f.habitRepo.GetByID(ctx, lapsed.ID)
		assert.Equal(t, 0, gotLapsed.Streak)
		assert.Equal(t, 4, gotLapsed.BestStreak)

		gotAlive, _ := f.habitRepo.GetByID(ctx, alive.ID)
		assert.Equal(t, 2, gotAlive.Streak)
	})

	t.Run("Idempotent across runs", func(t *testing.T) {
		f := newHabitFixture(t, "2026-09-01")

		lapsed, _ := domain.NewHabit("u1", "Lapsed", nil, 0, nil)
		lapsed.Streak = 4
		lapsed.LastCompletedDate = ptr(day("2026-08-25"))
		require.NoError(t, f.habitRepo.Create(ctx, lapsed))

		first, err := f.habits.RecomputeStreaks(ctx, "u1")
		require.NoError(t, err)
		second, err := f.habits.RecomputeStreaks(ctx, "u1")
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 0, second)
	})
}

func TestHabitService_CreateFromChallenge(t *testing.T) {
	f := newHabitFixture(t, "2026-09-01")

	habit, err := f.habits.CreateFromChallenge(context.Background(), "u1", domain.ChallengePayload{
		HabitTitle: "Cold shower",
		XPReward:   50,
	})

	require.NoError(t, err)
	assert.Equal(t, "Cold shower", habit.Title)
	assert.Equal(t, 50, habit.XPReward)
	assert.Equal(t, "u1", habit.UserID)
}
