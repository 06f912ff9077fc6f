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

// CommunityService handles community CRUD and membership
type CommunityService struct {
	communityRepo *repositories.CommunityRepository
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(repos *repositories.Repositories) *CommunityService {
	return &CommunityService{communityRepo: repos.CommunityRepository}
}

// Create inserts a community with the caller enrolled as its first member
func (s *CommunityService) Create(ctx context.Context, creatorID int64, req *dto.CreateCommunityRequest) (*models.Community, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsPublic:    isPublic,
		CreatedBy:   creatorID,
	}

	if _, err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, err
	}

	logger.Info().Int64("community_id", community.ID).Int64("user_id", creatorID).Msg("Community created")
	return s.communityRepo.GetByID(ctx, community.ID, creatorID)
}

// Get returns one community with the viewer's membership flag resolved
func (s *CommunityService) Get(ctx context.Context, id, viewerID int64) (*models.Community, error) {
	return s.communityRepo.GetByID(ctx, id, viewerID)
}

// List returns communities ordered by size
func (s *CommunityService) List(ctx context.Context, filter dto.CommunityFilter, page, size int) ([]*models.Community, dto.PaginationInfo, error) {
	offset := uint64((page - 1) * size)

	communities, total, err := s.communityRepo.GetAll(ctx, filter, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return communities, helpers.NewPaginationInfo(total, page, size), nil
}

// ListOwn returns communities the caller belongs to
func (s *CommunityService) ListOwn(ctx context.Context, userID int64) ([]*models.Community, error) {
	return s.communityRepo.GetMemberships(ctx, userID)
}

// Update modifies a community, creator or admin only
func (s *CommunityService) Update(ctx context.Context, id, requesterID int64, isAdmin bool, req *dto.UpdateCommunityRequest) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if community.CreatedBy != requesterID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.communityRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.communityRepo.GetByID(ctx, id, requesterID)
}

// Delete removes a community with its posts and memberships, creator or admin
// only
func (s *CommunityService) Delete(ctx context.Context, id, requesterID int64, isAdmin bool) error {
	community, err := s.communityRepo.GetByID(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if community.CreatedBy != requesterID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.communityRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("community_id", id).Int64("user_id", requesterID).Msg("Community deleted")
	return nil
}

// Join enrolls the caller in a community
func (s *CommunityService) Join(ctx context.Context, communityID, userID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID, userID)
	if err != nil {
		return err
	}

	if !community.IsPublic {
		return apperrors.ErrPermissionDenied
	}

	return s.communityRepo.Join(ctx, communityID, userID)
}

// Leave removes the caller from a community. The creator cannot leave; they
// delete the community instead.
func (s *CommunityService) Leave(ctx context.Context, communityID, userID int64) error {
	community, err := s.communityRepo.GetByID(ctx, communityID, userID)
	if err != nil {
		return err
	}

	if community.CreatedBy == userID {
		return apperrors.NewForbiddenError("community creator cannot leave; delete the community instead")
	}

	return s.communityRepo.Leave(ctx, communityID, userID)
}
