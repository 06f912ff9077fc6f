package services

import (
	"context"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
	"github.com/ladderhq/ladder/internal/pkg/logger"
)

// AdminService handles the privileged management operations. All callers are
// verified admins by the route middleware.
type AdminService struct {
	userRepo        *repositories.UserRepository
	opportunityRepo *repositories.OpportunityRepository
	communityRepo   *repositories.CommunityRepository
	postRepo        *repositories.PostRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repositories.Repositories) *AdminService {
	return &AdminService{
		userRepo:        repos.UserRepository,
		opportunityRepo: repos.OpportunityRepository,
		communityRepo:   repos.CommunityRepository,
		postRepo:        repos.PostRepository,
	}
}

// ListUsers pages through all accounts
func (s *AdminService) ListUsers(ctx context.Context, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset := (page - 1) * size

	users, total, err := s.userRepo.GetAll(ctx, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return users, helpers.NewPaginationInfo(total, page, size), nil
}

// SetAdmin grants or revokes admin on an account. Admins cannot revoke their
// own role, so the system cannot be left without an admin by accident.
func (s *AdminService) SetAdmin(ctx context.Context, targetID, requesterID int64, isAdmin bool) error {
	if targetID == requesterID && !isAdmin {
		return apperrors.NewForbiddenError("cannot revoke your own admin role")
	}

	if err := s.userRepo.SetAdmin(ctx, targetID, isAdmin); err != nil {
		return err
	}

	logger.Info().
		Int64("target_user_id", targetID).
		Int64("admin_id", requesterID).
		Bool("is_admin", isAdmin).
		Msg("Admin role changed")

	return nil
}

// DeleteUser removes an account
func (s *AdminService) DeleteUser(ctx context.Context, targetID, requesterID int64) error {
	if targetID == requesterID {
		return apperrors.NewForbiddenError("cannot delete your own account through the admin API")
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	logger.Warn().Int64("target_user_id", targetID).Int64("admin_id", requesterID).Msg("User deleted by admin")
	return nil
}
