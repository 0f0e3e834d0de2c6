package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realmquest/engine/internal/core/domain"
)

type AuthService struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	areaRepo    domain.AreaRepository
}

func NewAuthService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, areaRepo domain.AreaRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		areaRepo:    areaRepo,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

// Register creates the auth identity plus its game state: a level-1 ledger
// and the four default realms.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Profile, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, nil, err
	}

	username := input.Username
	if username == "" {
		username = user.DefaultUsername()
	}

	profile, err := domain.NewProfile(id, username)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("auth service: failed to create profile: %w", err)
	}

	for _, area := range domain.DefaultAreas(id) {
		if err := s.areaRepo.Create(ctx, area); err != nil {
			return nil, nil, fmt.Errorf("auth service: failed to seed areas: %w", err)
		}
	}

	return user, profile, nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
