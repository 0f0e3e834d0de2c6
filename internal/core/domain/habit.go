package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrHabitInvalidXP     = errors.New("habit xp reward must be positive")
	ErrHabitConflict      = errors.New("habit version conflict")
)

const MaxHabitTitleLen = 100

// Habit is a daily recurring task. Its streak fields form a small state
// machine driven by Complete and RecomputeStreak:
//
//   - fresh:  Streak == 0, LastCompletedDate == nil
//   - active: Streak > 0, LastCompletedDate is today or yesterday
//   - broken: Streak == 0, LastCompletedDate older than yesterday
type Habit struct {
	ID            string  `json:"id" db:"id"`
	UserID        string  `json:"user_id" db:"user_id"`
	Title         string  `json:"title" db:"title"`
	LinkedAreaID  *string `json:"linked_area_id,omitempty" db:"linked_area_id"`
	XPReward      int     `json:"xp_reward" db:"xp_reward"`
	TargetMinutes *int    `json:"target_minutes,omitempty" db:"target_minutes"`

	Streak            int        `json:"streak" db:"streak"`
	BestStreak        int        `json:"best_streak" db:"best_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty" db:"last_completed_date"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// DateOnly truncates a timestamp to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewHabit(userID, title string, linkedAreaID *string, xpReward int, targetMinutes *int) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrHabitTitleEmpty
	}
	if len(trimmed) > MaxHabitTitleLen {
		return nil, ErrHabitTitleTooLong
	}

	if xpReward == 0 {
		xpReward = DefaultHabitXP
	}
	if xpReward < 0 {
		return nil, ErrHabitInvalidXP
	}

	now := time.Now().UTC()

	return &Habit{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         trimmed,
		LinkedAreaID:  linkedAreaID,
		XPReward:      xpReward,
		TargetMinutes: targetMinutes,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CompletedOn reports whether the habit was last completed on the given day.
func (h *Habit) CompletedOn(day time.Time) bool {
	if h.LastCompletedDate == nil {
		return false
	}
	return DateOnly(*h.LastCompletedDate).Equal(DateOnly(day))
}

// Complete registers a completion for the given day and returns true when the
// habit actually changed. A second completion on the same calendar day is a
// no-op and returns false; the caller must only award XP when it returns true.
func (h *Habit) Complete(today time.Time) bool {
	today = DateOnly(today)

	if h.LastCompletedDate != nil && DateOnly(*h.LastCompletedDate).Equal(today) {
		return false
	}

	yesterday := today.AddDate(0, 0, -1)
	if h.LastCompletedDate != nil && DateOnly(*h.LastCompletedDate).Equal(yesterday) {
		h.Streak++
	} else {
		h.Streak = 1
	}

	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}

	h.LastCompletedDate = &today
	h.UpdatedAt = time.Now().UTC()
	return true
}

// RecomputeStreak zeroes a lapsed streak. It never touches BestStreak or
// LastCompletedDate and is idempotent within a day. Returns true when the
// streak was reset.
func (h *Habit) RecomputeStreak(today time.Time) bool {
	if h.Streak == 0 || h.LastCompletedDate == nil {
		return false
	}

	today = DateOnly(today)
	last := DateOnly(*h.LastCompletedDate)

	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		return false
	}

	h.Streak = 0
	h.UpdatedAt = time.Now().UTC()
	return true
}
