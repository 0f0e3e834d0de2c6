package services

import (
	"context"
	"fmt"

	"github.com/realmquest/engine/internal/core/domain"
)

// ProfileService owns the progression ledger: loading it, healing missing
// profiles and applying XP deposits on behalf of the completion paths.
type ProfileService struct {
	profileRepo domain.ProfileRepository
	areaRepo    domain.AreaRepository
	userRepo    domain.UserRepository
}

func NewProfileService(profileRepo domain.ProfileRepository, areaRepo domain.AreaRepository, userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		areaRepo:    areaRepo,
		userRepo:    userRepo,
	}
}

// Get loads the user's ledger. A missing profile is recreated with defaults
// so accounts predating the schema keep working.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if err != domain.ErrProfileNotFound {
		return nil, err
	}

	username := "Adventurer"
	if user, userErr := s.userRepo.GetByID(ctx, userID); userErr == nil {
		username = user.DefaultUsername()
	}

	profile, err = domain.NewProfile(userID, username)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile service: failed to heal missing profile: %w", err)
	}

	for _, area := range domain.DefaultAreas(userID) {
		if err := s.areaRepo.Create(ctx, area); err != nil {
			return nil, fmt.Errorf("profile service: failed to seed default areas: %w", err)
		}
	}

	return profile, nil
}

// Award is one reward application: global XP plus an optional, separately
// scaled attribute deposit.
type Award struct {
	XP              int
	Attribute       *domain.Attribute
	AttributePoints int
}

// ApplyAward deposits a reward into the ledger and persists the new snapshot.
// The write is a plain read-modify-write; two rapid-fire completions can race
// and the last one wins.
func (s *ProfileService) ApplyAward(ctx context.Context, userID string, award Award) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.DepositXP(award.XP); err != nil {
		return nil, err
	}

	if award.Attribute != nil {
		if err := profile.AddAttributePoints(*award.Attribute, award.AttributePoints); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile service: failed to persist ledger: %w", err)
	}

	return profile, nil
}
