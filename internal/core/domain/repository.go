package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type ProfileRepository interface {
	// Create persists a freshly initialized ledger for a new user.
	Create(ctx context.Context, profile *Profile) error

	GetByID(ctx context.Context, userID string) (*Profile, error)

	// Update writes back the whole ledger snapshot (last write wins).
	Update(ctx context.Context, profile *Profile) error

	// Search finds profiles by username substring, for the friend search.
	Search(ctx context.Context, query string, limit int) ([]*Profile, error)

	// ListByIDs loads the profiles backing a leaderboard in one round trip.
	ListByIDs(ctx context.Context, ids []string) ([]*Profile, error)
}

type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error
	GetByID(ctx context.Context, id string) (*Habit, error)
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies an existing habit, enforcing the optimistic version.
	Update(ctx context.Context, habit *Habit) error

	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	// Create persists the project together with its milestones.
	Create(ctx context.Context, project *Project) error

	// GetByID loads a project with its milestones ordered by position.
	GetByID(ctx context.Context, id string) (*Project, error)

	// ListActiveByUserID returns the user's not-yet-completed projects.
	ListActiveByUserID(ctx context.Context, userID string) ([]*Project, error)

	// MarkCompleted durably records completion. It is the first write of the
	// completion sequence, so a crash can leave "completed but unrewarded"
	// but never the reverse.
	MarkCompleted(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	GetMilestone(ctx context.Context, milestoneID string) (*Milestone, error)
	SetMilestoneDone(ctx context.Context, milestoneID string, done bool) (*Milestone, error)
}

type AreaRepository interface {
	Create(ctx context.Context, area *Area) error
	GetByID(ctx context.Context, id string) (*Area, error)
	ListByUserID(ctx context.Context, userID string) ([]*Area, error)
	Update(ctx context.Context, area *Area) error
	Delete(ctx context.Context, id string) error
}

type ArchiveRepository interface {
	// Append writes one immutable entry; archives are never updated or removed.
	Append(ctx context.Context, entry *ArchiveEntry) error

	ListByUserID(ctx context.Context, userID string) ([]*ArchiveEntry, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, resource *Resource) error
	GetByID(ctx context.Context, id string) (*Resource, error)
	ListByUserID(ctx context.Context, userID string) ([]*Resource, error)
	Update(ctx context.Context, resource *Resource) error
	Delete(ctx context.Context, id string) error
}

type FriendshipRepository interface {
	Create(ctx context.Context, friendship *Friendship) error
	GetByID(ctx context.Context, id string) (*Friendship, error)

	// ListByUserID returns every friendship the user participates in,
	// on either side and in any status.
	ListByUserID(ctx context.Context, userID string) ([]*Friendship, error)

	Update(ctx context.Context, friendship *Friendship) error
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
	Delete(ctx context.Context, id string) error
}

// Clock abstracts "today" so streak logic is testable across day boundaries.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func RealClock() Clock { return realClock{} }
