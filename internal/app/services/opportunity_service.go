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

// opportunityStore is the data-access surface the service depends on,
// narrowed so tests can substitute a fake
type opportunityStore interface {
	GetAllWithDetails(ctx context.Context, filter dto.OpportunityFilter, limit int, offset uint64) ([]*models.Opportunity, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Opportunity, error)
	Create(ctx context.Context, opp *models.Opportunity) (int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateOpportunityRequest) error
	Delete(ctx context.Context, id int64) error
}

// OpportunityService handles listing operations and their ownership rules
type OpportunityService struct {
	opportunityRepo opportunityStore
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(repos *repositories.Repositories) *OpportunityService {
	return &OpportunityService{opportunityRepo: repos.OpportunityRepository}
}

// List returns filtered, paginated opportunities with details joined in
func (s *OpportunityService) List(ctx context.Context, filter dto.OpportunityFilter, page, size int) ([]*models.Opportunity, dto.PaginationInfo, error) {
	offset := uint64((page - 1) * size)

	opportunities, total, err := s.opportunityRepo.GetAllWithDetails(ctx, filter, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return opportunities, helpers.NewPaginationInfo(total, page, size), nil
}

// Get returns one opportunity with details
func (s *OpportunityService) Get(ctx context.Context, id int64) (*models.Opportunity, error) {
	return s.opportunityRepo.GetByID(ctx, id)
}

// Create inserts a listing owned by the caller
func (s *OpportunityService) Create(ctx context.Context, creatorID int64, req *dto.CreateOpportunityRequest) (*models.Opportunity, error) {
	opp := &models.Opportunity{
		Title:                 req.Title,
		Description:           req.Description,
		Category:              req.Category,
		Location:              req.Location,
		Field:                 req.Field,
		Deadline:              req.Deadline,
		Requirements:          req.Requirements,
		ContactInfo:           req.ContactInfo,
		ApplicationURL:        req.ApplicationURL,
		IsExternalApplication: req.IsExternalApplication,
		CreatedBy:             creatorID,
	}

	if _, err := s.opportunityRepo.Create(ctx, opp); err != nil {
		return nil, err
	}

	logger.Info().Int64("opportunity_id", opp.ID).Int64("user_id", creatorID).Msg("Opportunity created")
	return s.opportunityRepo.GetByID(ctx, opp.ID)
}

// Update modifies a listing. Only the creator or an admin may update; a
// non-owner gets a permission error, never a not-found, so the resource's
// existence is not hidden behind authorization.
func (s *OpportunityService) Update(ctx context.Context, id, requesterID int64, isAdmin bool, req *dto.UpdateOpportunityRequest) (*models.Opportunity, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if opp.CreatedBy != requesterID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.opportunityRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}

	return s.opportunityRepo.GetByID(ctx, id)
}

// Delete removes a listing, creator or admin only. Applications referencing
// the listing survive as history.
func (s *OpportunityService) Delete(ctx context.Context, id, requesterID int64, isAdmin bool) error {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if opp.CreatedBy != requesterID && !isAdmin {
		return apperrors.ErrPermissionDenied
	}

	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("opportunity_id", id).Int64("user_id", requesterID).Msg("Opportunity deleted")
	return nil
}
