package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceTitleEmpty    = errors.New("resource title cannot be empty")
	ErrResourceInvalidUserID = errors.New("invalid user id")
)

// Resource is a freeform note in the library: markdown content plus tags.
type Resource struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      []string  `json:"tags" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewResource(userID, title, content string, tags []string) (*Resource, error) {
	if userID == "" {
		return nil, ErrResourceInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrResourceTitleEmpty
	}

	now := time.Now().UTC()

	return &Resource{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     trimmed,
		Content:   content,
		Tags:      normalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *Resource) Update(title, content string, tags []string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrResourceTitleEmpty
	}

	r.Title = trimmed
	r.Content = content
	r.Tags = normalizeTags(tags)
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
