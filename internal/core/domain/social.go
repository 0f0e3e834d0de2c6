package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFriendshipNotFound   = errors.New("friendship not found")
	ErrFriendshipExists     = errors.New("friendship already exists")
	ErrFriendshipSelf       = errors.New("cannot send a friend request to yourself")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidChallenge     = errors.New("invalid challenge payload")
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Friendship links a requester (UserID) to a recipient (FriendID).
type Friendship struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	FriendID  string           `json:"friend_id" db:"friend_id"`
	Status    FriendshipStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

func NewFriendship(userID, friendID string) (*Friendship, error) {
	if userID == "" || friendID == "" {
		return nil, ErrProfileInvalidID
	}
	if userID == friendID {
		return nil, ErrFriendshipSelf
	}

	return &Friendship{
		ID:        uuid.New().String(),
		UserID:    userID,
		FriendID:  friendID,
		Status:    FriendshipPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (f *Friendship) Accept() {
	f.Status = FriendshipAccepted
}

// Other returns the id of the counterpart relative to the given user.
func (f *Friendship) Other(userID string) string {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

// FriendProfile is a profile decorated with friendship metadata for listings.
type FriendProfile struct {
	Profile
	FriendshipID     string           `json:"friendship_id"`
	FriendshipStatus FriendshipStatus `json:"friendship_status"`
	IsRequester      bool             `json:"is_requester"`
}

// LeaderboardEntry is one row of the friends leaderboard: self plus accepted
// friends, ranked by level then pending XP.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Level     int     `json:"level"`
	CurrentXP int     `json:"current_xp"`
}

type NotificationType string

const NotificationHabitChallenge NotificationType = "habit_challenge"

// ChallengePayload is the data carried by a habit challenge notification.
type ChallengePayload struct {
	HabitTitle string `json:"habit_title"`
	XPReward   int    `json:"xp_reward"`
}

// Notification delivers a challenge from one user to another. Accepting a
// habit challenge materializes a habit on the recipient's account.
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	SenderID  string           `json:"sender_id" db:"sender_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Data      json.RawMessage  `json:"data" db:"data"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

func NewChallengeNotification(senderID, recipientID string, payload ChallengePayload) (*Notification, error) {
	if senderID == "" || recipientID == "" {
		return nil, ErrProfileInvalidID
	}
	if senderID == recipientID {
		return nil, ErrFriendshipSelf
	}
	if payload.HabitTitle == "" {
		return nil, ErrInvalidChallenge
	}
	if payload.XPReward == 0 {
		payload.XPReward = DefaultHabitXP
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Notification{
		ID:        uuid.New().String(),
		UserID:    recipientID,
		SenderID:  senderID,
		Type:      NotificationHabitChallenge,
		Title:     payload.HabitTitle,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Challenge decodes the challenge payload carried by the notification.
func (n *Notification) Challenge() (ChallengePayload, error) {
	var payload ChallengePayload
	if n.Type != NotificationHabitChallenge {
		return payload, ErrInvalidChallenge
	}
	if err := json.Unmarshal(n.Data, &payload); err != nil {
		return payload, ErrInvalidChallenge
	}
	if payload.HabitTitle == "" {
		return payload, ErrInvalidChallenge
	}
	return payload, nil
}
