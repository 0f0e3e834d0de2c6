package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidArchiveType = errors.New("invalid archive type (must be PROJECT or RESOURCE)")

type ArchiveType string

const (
	ArchiveTypeProject  ArchiveType = "PROJECT"
	ArchiveTypeResource ArchiveType = "RESOURCE"
)

// ArchiveEntry is an immutable record in the hall of fame, written exactly
// once per completion event and never mutated or deleted afterwards.
type ArchiveEntry struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	OriginalID    string      `json:"original_id" db:"original_id"`
	Title         string      `json:"title" db:"title"`
	Type          ArchiveType `json:"type" db:"type"`
	CompletedDate time.Time   `json:"completed_date" db:"completed_date"`
}

func NewArchiveEntry(userID, originalID, title string, archiveType ArchiveType) (*ArchiveEntry, error) {
	switch archiveType {
	case ArchiveTypeProject, ArchiveTypeResource:
	default:
		return nil, ErrInvalidArchiveType
	}

	return &ArchiveEntry{
		ID:            uuid.New().String(),
		UserID:        userID,
		OriginalID:    originalID,
		Title:         title,
		Type:          archiveType,
		CompletedDate: time.Now().UTC(),
	}, nil
}
