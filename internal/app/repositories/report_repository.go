package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// ReportRepository handles database operations for moderation reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a report in the pending state
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) (int64, error) {
	query := `
		INSERT INTO reports (reporter_id, target_type, target_id, reason, description, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	report.Status = models.ReportPending
	err := r.db.QueryRow(ctx, query,
		report.ReporterID, report.TargetType, report.TargetID,
		report.Reason, report.Description, report.Status,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating report: %w", err)
	}

	return report.ID, nil
}

// GetByID retrieves a single report
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `
		SELECT id, reporter_id, target_type, target_id, reason, description, status, reviewed_by, created_at
		FROM reports
		WHERE id = $1
	`

	var report models.Report
	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID, &report.ReporterID, &report.TargetType, &report.TargetID,
		&report.Reason, &report.Description, &report.Status, &report.ReviewedBy, &report.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}

	return &report, nil
}

// GetAll lists reports for admin review, pending first then newest first.
// status filters to one review state when non-empty.
func (r *ReportRepository) GetAll(ctx context.Context, status models.ReportStatus, limit, offset int) ([]*models.Report, int64, error) {
	query := `
		SELECT rp.id, rp.reporter_id, rp.target_type, rp.target_id, rp.reason,
		       rp.description, rp.status, rp.reviewed_by, rp.created_at,
		       u.username,
		       COUNT(*) OVER() AS total_count
		FROM reports rp
		LEFT JOIN users u ON rp.reporter_id = u.id
		WHERE ($1 = '' OR rp.status = $1)
		ORDER BY (rp.status = 'pending') DESC, rp.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	var total int64
	for rows.Next() {
		var report models.Report
		var username *string

		err := rows.Scan(
			&report.ID, &report.ReporterID, &report.TargetType, &report.TargetID,
			&report.Reason, &report.Description, &report.Status, &report.ReviewedBy, &report.CreatedAt,
			&username,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning report row: %w", err)
		}

		if username != nil {
			report.Reporter = &models.User{ID: report.ReporterID, Username: *username}
		}

		reports = append(reports, &report)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report rows: %w", err)
	}

	if reports == nil {
		reports = []*models.Report{}
	}

	return reports, total, nil
}

// Review closes a report with the reviewing admin recorded
func (r *ReportRepository) Review(ctx context.Context, id int64, status models.ReportStatus, reviewerID int64) error {
	query := `
		UPDATE reports
		SET status = $1, reviewed_by = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, status, reviewerID, id)
	if err != nil {
		return fmt.Errorf("error reviewing report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}
