package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/realmquest/engine/internal/core/domain"
)

// SocialService covers friendships, the friends leaderboard and habit
// challenges. Its only hooks into the progression engine are profile reads
// and the create-habit-from-challenge call.
type SocialService struct {
	friendshipRepo   domain.FriendshipRepository
	notificationRepo domain.NotificationRepository
	profileRepo      domain.ProfileRepository
	habits           *HabitService
}

func NewSocialService(friendshipRepo domain.FriendshipRepository, notificationRepo domain.NotificationRepository, profileRepo domain.ProfileRepository, habits *HabitService) *SocialService {
	return &SocialService{
		friendshipRepo:   friendshipRepo,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		habits:           habits,
	}
}

const searchLimit = 10

func (s *SocialService) SearchUsers(ctx context.Context, query string) ([]*domain.Profile, error) {
	if len(query) < 2 {
		return nil, nil
	}
	return s.profileRepo.Search(ctx, query, searchLimit)
}

func (s *SocialService) SendFriendRequest(ctx context.Context, userID, friendID string) (*domain.Friendship, error) {
	existing, err := s.friendshipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if f.Other(userID) == friendID {
			return nil, domain.ErrFriendshipExists
		}
	}

	friendship, err := domain.NewFriendship(userID, friendID)
	if err != nil {
		return nil, err
	}

	if err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		return nil, fmt.Errorf("social service: failed to create friendship: %w", err)
	}

	return friendship, nil
}

// AcceptFriendRequest confirms a pending request. Only the recipient can
// accept.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, userID, friendshipID string) error {
	friendship, err := s.friendshipRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.FriendID != userID {
		return domain.ErrFriendshipNotFound
	}

	friendship.Accept()

	if err := s.friendshipRepo.Update(ctx, friendship); err != nil {
		return fmt.Errorf("social service: failed to accept friendship: %w", err)
	}
	return nil
}

// DeclineFriendRequest removes a request (or an existing friendship); either
// side may do it.
func (s *SocialService) DeclineFriendRequest(ctx context.Context, userID, friendshipID string) error {
	friendship, err := s.friendshipRepo.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.UserID != userID && friendship.FriendID != userID {
		return domain.ErrFriendshipNotFound
	}

	return s.friendshipRepo.Delete(ctx, friendshipID)
}

type FriendList struct {
	Confirmed []*domain.FriendProfile `json:"confirmed"`
	Pending   []*domain.FriendProfile `json:"pending"`
}

func (s *SocialService) ListFriends(ctx context.Context, userID string) (*FriendList, error) {
	friendships, err := s.friendshipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &FriendList{}
	if len(friendships) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.Other(userID))
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	for _, f := range friendships {
		profile, ok := byID[f.Other(userID)]
		if !ok {
			continue
		}

		fp := &domain.FriendProfile{
			Profile:          *profile,
			FriendshipID:     f.ID,
			FriendshipStatus: f.Status,
			IsRequester:      f.UserID == userID,
		}

		switch f.Status {
		case domain.FriendshipAccepted:
			list.Confirmed = append(list.Confirmed, fp)
		case domain.FriendshipPending:
			list.Pending = append(list.Pending, fp)
		}
	}

	return list, nil
}

// Leaderboard ranks the user and their accepted friends by level, then by
// pending XP.
func (s *SocialService) Leaderboard(ctx context.Context, userID string) ([]*domain.LeaderboardEntry, error) {
	friendships, err := s.friendshipRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := []string{userID}
	for _, f := range friendships {
		if f.Status == domain.FriendshipAccepted {
			ids = append(ids, f.Other(userID))
		}
	}

	profiles, err := s.profileRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Level != profiles[j].Level {
			return profiles[i].Level > profiles[j].Level
		}
		return profiles[i].CurrentXP > profiles[j].CurrentXP
	})

	entries := make([]*domain.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, &domain.LeaderboardEntry{
			Rank:      i + 1,
			UserID:    p.ID,
			Username:  p.Username,
			AvatarURL: p.AvatarURL,
			Level:     p.Level,
			CurrentXP: p.CurrentXP,
		})
	}

	return entries, nil
}

func (s *SocialService) ListNotifications(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID)
}

// SendChallenge delivers a habit challenge to a friend's inbox.
func (s *SocialService) SendChallenge(ctx context.Context, senderID, friendID string, payload domain.ChallengePayload) (*domain.Notification, error) {
	notification, err := domain.NewChallengeNotification(senderID, friendID, payload)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("social service: failed to deliver challenge: %w", err)
	}

	return notification, nil
}

// AcceptChallenge turns a challenge notification into a habit on the
// recipient's account and clears the notification.
func (s *SocialService) AcceptChallenge(ctx context.Context, userID, notificationID string) (*domain.Habit, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}

	payload, err := notification.Challenge()
	if err != nil {
		return nil, err
	}

	habit, err := s.habits.CreateFromChallenge(ctx, userID, payload)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.Delete(ctx, notificationID); err != nil {
		return nil, fmt.Errorf("social service: failed to clear accepted challenge: %w", err)
	}

	return habit, nil
}

// DismissChallenge drops a notification without creating anything.
func (s *SocialService) DismissChallenge(ctx context.Context, userID, notificationID string) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return domain.ErrNotificationNotFound
	}

	return s.notificationRepo.Delete(ctx, notificationID)
}
