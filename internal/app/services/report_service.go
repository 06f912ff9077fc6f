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

// ReportService handles moderation reports
type ReportService struct {
	reportRepo    *repositories.ReportRepository
	userRepo      *repositories.UserRepository
	communityRepo *repositories.CommunityRepository
	postRepo      *repositories.PostRepository
}

// NewReportService creates a new ReportService
func NewReportService(repos *repositories.Repositories) *ReportService {
	return &ReportService{
		reportRepo:    repos.ReportRepository,
		userRepo:      repos.UserRepository,
		communityRepo: repos.CommunityRepository,
		postRepo:      repos.PostRepository,
	}
}

// Create files a report against a user, community, or post. The target must
// exist.
func (s *ReportService) Create(ctx context.Context, reporterID int64, req *dto.CreateReportRequest) (*models.Report, error) {
	targetType := models.ReportTargetType(req.TargetType)
	if !targetType.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown report target type")
	}

	if err := s.checkTargetExists(ctx, targetType, req.TargetID); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReporterID:  reporterID,
		TargetType:  targetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
	}

	if _, err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("report_id", report.ID).
		Str("target_type", string(targetType)).
		Int64("target_id", req.TargetID).
		Msg("Report filed")

	return report, nil
}

func (s *ReportService) checkTargetExists(ctx context.Context, targetType models.ReportTargetType, targetID int64) error {
	switch targetType {
	case models.ReportTargetUser:
		_, err := s.userRepo.GetByID(ctx, targetID)
		return err
	case models.ReportTargetCommunity:
		_, err := s.communityRepo.GetByID(ctx, targetID, 0)
		return err
	case models.ReportTargetPost:
		_, err := s.postRepo.GetByID(ctx, targetID)
		return err
	}
	return apperrors.ErrBadRequest
}

// List returns reports for admin review, pending first
func (s *ReportService) List(ctx context.Context, status models.ReportStatus, page, size int) ([]*models.Report, dto.PaginationInfo, error) {
	offset := (page - 1) * size

	reports, total, err := s.reportRepo.GetAll(ctx, status, size, offset)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return reports, helpers.NewPaginationInfo(total, page, size), nil
}

// Review closes a report as reviewed or dismissed
func (s *ReportService) Review(ctx context.Context, reportID, reviewerID int64, status models.ReportStatus) (*models.Report, error) {
	if status != models.ReportReviewed && status != models.ReportDismissed {
		return nil, apperrors.NewBadRequestError("review status must be reviewed or dismissed")
	}

	if err := s.reportRepo.Review(ctx, reportID, status, reviewerID); err != nil {
		return nil, err
	}

	return s.reportRepo.GetByID(ctx, reportID)
}
