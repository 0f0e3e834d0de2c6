package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty (must be EASY, MEDIUM, HARD or EPIC)")

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
	DifficultyEpic   Difficulty = "EPIC"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

const (
	// MilestoneXP is the flat reward for checking off a single milestone.
	// It is global XP only and is awarded on every false->true transition.
	MilestoneXP = 10

	// DefaultHabitXP is used when a habit is created without an explicit tier.
	DefaultHabitXP = 25
)

// RewardForDifficulty maps a quest difficulty to its global XP reward.
// The value is frozen on the quest at creation time.
func RewardForDifficulty(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return 50, nil
	case DifficultyMedium:
		return 100, nil
	case DifficultyHard:
		return 200, nil
	case DifficultyEpic:
		return 500, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, d)
	}
}

// AttributeBonus is the attribute share of a completed unit of work:
// floor(25%) of the global XP. Deposited into the linked realm's attribute,
// never into global XP.
func AttributeBonus(globalXP int) int {
	return globalXP / 4
}
