package services

import (
	"context"

	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// UserService handles profile and settings operations
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repos *repositories.Repositories) *UserService {
	return &UserService{userRepo: repos.UserRepository}
}

// GetOwnProfile returns the caller's account with profile and settings.
// Profile and settings rows are created on first read.
func (s *UserService) GetOwnProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings, err := s.userRepo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{User: user, Profile: profile, Settings: settings}, nil
}

// GetPublicProfile returns another user's account and profile, honoring the
// profile visibility setting. Settings are never exposed to other users.
func (s *UserService) GetPublicProfile(ctx context.Context, targetID, viewerID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	settings, err := s.userRepo.GetSettings(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !settings.ProfileVisible && targetID != viewerID {
		return nil, apperrors.ErrUserNotFound
	}

	profile, err := s.userRepo.GetProfile(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{User: user, Profile: profile}, nil
}

// UpdateProfile applies the non-nil fields of the request
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if req.FullName != nil {
		if err := s.userRepo.UpdateFullName(ctx, userID, *req.FullName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.Bio, req.Location, req.Field, req.AvatarURL); err != nil {
		return nil, err
	}

	return s.GetOwnProfile(ctx, userID)
}

// UpdateSettings applies the non-nil fields of the request
func (s *UserService) UpdateSettings(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (*dto.ProfileResponse, error) {
	if err := s.userRepo.UpdateSettings(ctx, userID, req.ProfileVisible, req.NotificationsEnabled, req.Language); err != nil {
		return nil, err
	}

	return s.GetOwnProfile(ctx, userID)
}

// DeleteAccount removes the caller's account
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.userRepo.Delete(ctx, userID)
}
