package service

import (
	"context"
	"fmt"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"

	"go.uber.org/zap"
)

// ProfileService defines the interface for member profiles
type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo repository.ProfileRepository, logger *zap.Logger) ProfileService {
	return &profileService{profileRepo: profileRepo, logger: logger}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*domain.Profile, error) {
	return s.profileRepo.FindByUsername(ctx, username)
}

// UpdateProfile validates the update before touching the stored profile
func (s *profileService) UpdateProfile(ctx context.Context, username string, update domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := update.Apply(profile); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", zap.String("username", username))

	return profile, nil
}
