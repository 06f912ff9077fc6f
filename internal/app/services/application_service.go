package services

import (
	"context"
	"time"

	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
	"github.com/ladderhq/ladder/internal/pkg/logger"
)

// applicationStore is the data-access surface the service depends on,
// narrowed so tests can substitute a fake
type applicationStore interface {
	Create(ctx context.Context, userID, opportunityID int64) (*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Application, int64, error)
	GetByOpportunity(ctx context.Context, opportunityID int64, limit, offset int) ([]*models.Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
	Delete(ctx context.Context, id int64) error
}

// opportunityGetter is the slice of the opportunity store the application
// rules need
type opportunityGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Opportunity, error)
}

// ApplicationService handles applying to opportunities and reviewing applicants
type ApplicationService struct {
	applicationRepo applicationStore
	opportunityRepo opportunityGetter
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(repos *repositories.Repositories) *ApplicationService {
	return &ApplicationService{
		applicationRepo: repos.ApplicationRepository,
		opportunityRepo: repos.OpportunityRepository,
	}
}

// Apply creates an application for the caller. The listing must exist and its
// deadline must not have passed.
func (s *ApplicationService) Apply(ctx context.Context, userID, opportunityID int64) (*models.Application, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(opp.Deadline) {
		return nil, apperrors.ErrOpportunityExpired
	}

	app, err := s.applicationRepo.Create(ctx, userID, opportunityID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("application_id", app.ID).
		Int64("opportunity_id", opportunityID).
		Int64("user_id", userID).
		Msg("Application submitted")

	return app, nil
}

// ListOwn lists the caller's applications with listing details
func (s *ApplicationService) ListOwn(ctx context.Context, userID int64, page, size int) ([]*models.Application, dto.PaginationInfo, error) {
	offset := (page - 1) * size

	applications, total, err := s.applicationRepo.GetByUser(ctx, userID, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return applications, helpers.NewPaginationInfo(total, page, size), nil
}

// ListForOpportunity lists applicants for a listing. Only the listing's
// creator or an admin may review applicants.
func (s *ApplicationService) ListForOpportunity(ctx context.Context, opportunityID, requesterID int64, isAdmin bool, page, size int) ([]*models.Application, dto.PaginationInfo, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	if opp.CreatedBy != requesterID && !isAdmin {
		return nil, dto.PaginationInfo{}, apperrors.ErrPermissionDenied
	}

	offset := (page - 1) * size
	applications, total, err := s.applicationRepo.GetByOpportunity(ctx, opportunityID, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return applications, helpers.NewPaginationInfo(total, page, size), nil
}

// UpdateStatus moves an application through its lifecycle. Only the listing's
// creator or an admin may change status.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID, requesterID int64, isAdmin bool, status models.ApplicationStatus) (*models.Application, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	opp, err := s.opportunityRepo.GetByID(ctx, app.OpportunityID)
	if err != nil {
		return nil, err
	}

	if opp.CreatedBy != requesterID && !isAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}

	return s.applicationRepo.GetByID(ctx, applicationID)
}

// Withdraw deletes the caller's own application
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, requesterID int64) error {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if app.UserID != requesterID {
		return apperrors.ErrPermissionDenied
	}

	return s.applicationRepo.Delete(ctx, applicationID)
}
