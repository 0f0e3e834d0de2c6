package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAreaNotFound      = errors.New("area not found")
	ErrAreaTitleEmpty    = errors.New("area title cannot be empty")
	ErrAreaInvalidUserID = errors.New("invalid user id")
)

// Area is a realm: a long-lived life category linked to one attribute.
// The progression engine only reads it to decide which attribute receives
// the bonus when linked work completes.
type Area struct {
	ID                  string    `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	Title               string    `json:"title" db:"title"`
	AssociatedAttribute Attribute `json:"associated_attribute" db:"associated_attribute"`
	CurrentLevel        int       `json:"current_level" db:"current_level"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

func NewArea(userID, title string, attr Attribute) (*Area, error) {
	if userID == "" {
		return nil, ErrAreaInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrAreaTitleEmpty
	}

	if !attr.IsValid() {
		return nil, ErrInvalidAttribute
	}

	return &Area{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Title:               trimmed,
		AssociatedAttribute: attr,
		CurrentLevel:        1,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func (a *Area) Rename(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrAreaTitleEmpty
	}
	a.Title = trimmed
	return nil
}

// DefaultAreas are seeded for every new profile.
func DefaultAreas(userID string) []*Area {
	defaults := []struct {
		title string
		attr  Attribute
	}{
		{"Work & Career", AttributeWealth},
		{"Health & Fitness", AttributeStrength},
		{"Learning", AttributeIntellect},
		{"Social", AttributeCharisma},
	}

	areas := make([]*Area, 0, len(defaults))
	for _, d := range defaults {
		a, err := NewArea(userID, d.title, d.attr)
		if err != nil {
			continue
		}
		areas = append(areas, a)
	}
	return areas
}
