package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/dberrors"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts an application in the initial "applied" state. The unique
// (user_id, opportunity_id) constraint rejects a second application for the
// same listing.
func (r *ApplicationRepository) Create(ctx context.Context, userID, opportunityID int64) (*models.Application, error) {
	query := `
		INSERT INTO applications (user_id, opportunity_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	app := &models.Application{
		UserID:        userID,
		OpportunityID: opportunityID,
		Status:        models.StatusApplied,
	}

	err := r.db.QueryRow(ctx, query, userID, opportunityID, models.StatusApplied).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	return app, nil
}

// GetByID retrieves a single application
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := `
		SELECT id, user_id, opportunity_id, status, created_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var app models.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.UserID, &app.OpportunityID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return &app, nil
}

// GetByUser lists a user's applications newest first, with the listing joined
// in when it still exists
func (r *ApplicationRepository) GetByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Application, int64, error) {
	query := `
		SELECT a.id, a.user_id, a.opportunity_id, a.status, a.created_at, a.updated_at,
		       o.id, o.title, o.category, o.location, o.deadline,
		       COUNT(*) OVER() AS total_count
		FROM applications a
		LEFT JOIN opportunities o ON a.opportunity_id = o.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	var total int64
	for rows.Next() {
		var app models.Application
		var oppID *int64
		var title, category, location *string
		var deadline *time.Time

		err := rows.Scan(
			&app.ID, &app.UserID, &app.OpportunityID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&oppID, &title, &category, &location, &deadline,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}

		// Deleted listings leave the application row with no join data
		if oppID != nil {
			app.Opportunity = &models.Opportunity{
				ID:       *oppID,
				Title:    *title,
				Category: *category,
				Location: *location,
				Deadline: *deadline,
			}
		}

		applications = append(applications, &app)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	if applications == nil {
		applications = []*models.Application{}
	}

	return applications, total, nil
}

// GetByOpportunity lists applications for a listing with applicant details,
// used by the listing's creator to review candidates
func (r *ApplicationRepository) GetByOpportunity(ctx context.Context, opportunityID int64, limit, offset int) ([]*models.Application, int64, error) {
	query := `
		SELECT a.id, a.user_id, a.opportunity_id, a.status, a.created_at, a.updated_at,
		       u.username, u.full_name, u.email,
		       COUNT(*) OVER() AS total_count
		FROM applications a
		JOIN users u ON a.user_id = u.id
		WHERE a.opportunity_id = $1
		ORDER BY a.created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, opportunityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	var total int64
	for rows.Next() {
		var app models.Application
		var applicant models.User

		err := rows.Scan(
			&app.ID, &app.UserID, &app.OpportunityID, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&applicant.Username, &applicant.FullName, &applicant.Email,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}

		applicant.ID = app.UserID
		app.Applicant = &applicant
		applications = append(applications, &app)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	if applications == nil {
		applications = []*models.Application{}
	}

	return applications, total, nil
}

// UpdateStatus moves an application to a new lifecycle state
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	query := `
		UPDATE applications
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete withdraws an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Exists reports whether the user already applied to the opportunity
func (r *ApplicationRepository) Exists(ctx context.Context, userID, opportunityID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE user_id = $1 AND opportunity_id = $2)`,
		userID, opportunityID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}
