package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectTitleEmpty       = errors.New("project title cannot be empty")
	ErrProjectTitleTooLong     = errors.New("project title is too long (max 200 chars)")
	ErrProjectInvalidUserID    = errors.New("invalid user id")
	ErrProjectAlreadyCompleted = errors.New("project is already completed")
	ErrMilestoneNotFound       = errors.New("milestone not found")
	ErrMilestoneTextEmpty      = errors.New("milestone text cannot be empty")
)

const MaxProjectTitleLen = 200

type Milestone struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`
	Text      string `json:"text" db:"text"`
	IsDone    bool   `json:"is_done" db:"is_done"`
	Position  int    `json:"position" db:"position"`
}

func NewMilestone(projectID, text string, position int) (*Milestone, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrMilestoneTextEmpty
	}

	return &Milestone{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Text:      trimmed,
		Position:  position,
	}, nil
}

// Project is a quest: a unit of work with ordered milestones and a
// difficulty-tier XP reward frozen at creation.
type Project struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	LinkedAreaID *string    `json:"linked_area_id,omitempty" db:"linked_area_id"`
	Difficulty   Difficulty `json:"difficulty" db:"difficulty"`
	XPReward     int        `json:"xp_reward" db:"xp_reward"`
	Deadline     *time.Time `json:"deadline,omitempty" db:"deadline"`
	IsCompleted  bool       `json:"is_completed" db:"is_completed"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Milestones []Milestone `json:"milestones" db:"-"`
}

func NewProject(userID, title string, difficulty Difficulty, linkedAreaID *string, deadline *time.Time, milestoneTexts []string) (*Project, error) {
	if userID == "" {
		return nil, ErrProjectInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrProjectTitleEmpty
	}
	if len(trimmed) > MaxProjectTitleLen {
		return nil, ErrProjectTitleTooLong
	}

	reward, err := RewardForDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	p := &Project{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        trimmed,
		LinkedAreaID: linkedAreaID,
		Difficulty:   difficulty,
		XPReward:     reward,
		Deadline:     deadline,
		CreatedAt:    time.Now().UTC(),
	}

	for i, text := range milestoneTexts {
		m, err := NewMilestone(p.ID, text, i)
		if err != nil {
			return nil, err
		}
		p.Milestones = append(p.Milestones, *m)
	}

	return p, nil
}

// MarkCompleted transitions the project into its terminal state. Completing
// an already-completed project is rejected so the reward is paid at most once.
func (p *Project) MarkCompleted() error {
	if p.IsCompleted {
		return ErrProjectAlreadyCompleted
	}
	p.IsCompleted = true
	return nil
}
