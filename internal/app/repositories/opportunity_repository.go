package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// opportunityColumns is the joined select list shared by the list and detail
// queries: the listing, its creator, and the aggregate counts come back in a
// single round trip.
var opportunityColumns = []string{
	"o.id", "o.title", "o.description", "o.category", "o.location", "o.field",
	"o.deadline", "o.requirements", "o.contact_info", "o.application_url",
	"o.is_external_application", "o.created_by", "o.created_at",
	"u.username", "u.full_name",
	"(SELECT COUNT(*) FROM favorites f WHERE f.opportunity_id = o.id) AS favorite_count",
	"(SELECT COUNT(*) FROM applications a WHERE a.opportunity_id = o.id) AS applicant_count",
}

// OpportunityRepository handles database operations for opportunities
type OpportunityRepository struct {
	db *pgxpool.Pool
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(db *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// buildListQuery composes the filtered list query. Every filter is optional;
// an absent filter contributes no predicate. The builder renders positional
// placeholders from the accumulated predicate list, so LIMIT/OFFSET always
// land after the conditional filters.
func buildOpportunityListQuery(filter dto.OpportunityFilter, limit int, offset uint64) (string, []interface{}, error) {
	qb := squirrel.Select(append(opportunityColumns, "COUNT(*) OVER() AS total_count")...).
		From("opportunities o").
		LeftJoin("users u ON o.created_by = u.id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Category != nil {
		qb = qb.Where("o.category = ?", *filter.Category)
	}
	if filter.Location != nil {
		qb = qb.Where("o.location ILIKE ?", "%"+*filter.Location+"%")
	}
	if filter.Field != nil {
		qb = qb.Where("o.field = ?", *filter.Field)
	}
	if filter.CreatedBy != nil {
		qb = qb.Where("o.created_by = ?", *filter.CreatedBy)
	}
	if filter.DeadlineAfter != nil {
		qb = qb.Where("o.deadline > ?", *filter.DeadlineAfter)
	} else if !filter.IncludeExpired {
		// Active window: only listings whose deadline has not passed
		qb = qb.Where("o.deadline > NOW()")
	}
	if filter.DeadlineBefore != nil {
		qb = qb.Where("o.deadline < ?", *filter.DeadlineBefore)
	}

	return qb.OrderBy("o.created_at DESC", "o.id DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
}

// GetAllWithDetails retrieves opportunities with creator and counts joined in,
// filtered and paginated
func (r *OpportunityRepository) GetAllWithDetails(ctx context.Context, filter dto.OpportunityFilter, limit int, offset uint64) ([]*models.Opportunity, int64, error) {
	sql, args, err := buildOpportunityListQuery(filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var opportunities []*models.Opportunity
	var total int64
	for rows.Next() {
		opp, err := scanOpportunity(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating opportunity rows: %w", err)
	}

	if opportunities == nil {
		opportunities = []*models.Opportunity{}
	}

	return opportunities, total, nil
}

// scanOpportunity scans a joined opportunity row. total may be nil when the
// query carries no window count.
func scanOpportunity(rows pgx.Rows, total *int64) (*models.Opportunity, error) {
	var opp models.Opportunity
	var username, fullName *string

	dest := []interface{}{
		&opp.ID, &opp.Title, &opp.Description, &opp.Category, &opp.Location, &opp.Field,
		&opp.Deadline, &opp.Requirements, &opp.ContactInfo, &opp.ApplicationURL,
		&opp.IsExternalApplication, &opp.CreatedBy, &opp.CreatedAt,
		&username, &fullName,
		&opp.FavoriteCount, &opp.ApplicantCount,
	}
	if total != nil {
		dest = append(dest, total)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("error scanning opportunity row: %w", err)
	}

	if username != nil {
		opp.Creator = &models.User{ID: opp.CreatedBy, Username: *username}
		if fullName != nil {
			opp.Creator.FullName = *fullName
		}
	}

	return &opp, nil
}

// GetByID retrieves an opportunity with its creator and counts
func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	sql, args, err := squirrel.Select(opportunityColumns...).
		From("opportunities o").
		LeftJoin("users u ON o.created_by = u.id").
		Where("o.id = ?", id).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error retrieving opportunity: %w", err)
		}
		return nil, apperrors.ErrOpportunityNotFound
	}

	return scanOpportunity(rows, nil)
}

// GetByIDs retrieves multiple opportunities in one query, used to hydrate
// favorites without a per-row lookup
func (r *OpportunityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Opportunity, error) {
	if len(ids) == 0 {
		return []*models.Opportunity{}, nil
	}

	sql, args, err := squirrel.Select(opportunityColumns...).
		From("opportunities o").
		LeftJoin("users u ON o.created_by = u.id").
		Where("o.id = ANY(?)", ids).
		OrderBy("o.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var opportunities []*models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows, nil)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunity rows: %w", err)
	}

	if opportunities == nil {
		opportunities = []*models.Opportunity{}
	}

	return opportunities, nil
}

// Create inserts a new opportunity
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) (int64, error) {
	query := `
		INSERT INTO opportunities (
			title, description, category, location, field, deadline,
			requirements, contact_info, application_url, is_external_application, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		opp.Title, opp.Description, opp.Category, opp.Location, opp.Field, opp.Deadline,
		opp.Requirements, opp.ContactInfo, opp.ApplicationURL, opp.IsExternalApplication, opp.CreatedBy,
	).Scan(&opp.ID, &opp.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating opportunity: %w", err)
	}

	return opp.ID, nil
}

// Update updates mutable fields; nil values keep the current column value
func (r *OpportunityRepository) Update(ctx context.Context, id int64, req *dto.UpdateOpportunityRequest) error {
	query := `
		UPDATE opportunities
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    category = COALESCE($3, category),
		    location = COALESCE($4, location),
		    field = COALESCE($5, field),
		    deadline = COALESCE($6, deadline),
		    requirements = COALESCE($7, requirements),
		    contact_info = COALESCE($8, contact_info)
		WHERE id = $9
	`

	result, err := r.db.Exec(ctx, query,
		req.Title, req.Description, req.Category, req.Location,
		req.Field, req.Deadline, req.Requirements, req.ContactInfo, id,
	)
	if err != nil {
		return fmt.Errorf("error updating opportunity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// Delete removes an opportunity. Application rows referencing it are kept as
// history; joined application queries tolerate the missing listing.
func (r *OpportunityRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM opportunities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting opportunity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// Search ranks active opportunities against a query term. Title matches are
// weighted above description matches; equally ranked rows fall back to
// recency for stable ordering.
func (r *OpportunityRepository) Search(ctx context.Context, term string, limit, offset int) ([]*models.Opportunity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM opportunities o
		LEFT JOIN users u ON o.created_by = u.id,
		ts_rank(
			setweight(to_tsvector('english', o.title), 'A') ||
			setweight(to_tsvector('english', o.description), 'B'),
			plainto_tsquery('english', $1)
		) AS rank
		WHERE (
			setweight(to_tsvector('english', o.title), 'A') ||
			setweight(to_tsvector('english', o.description), 'B')
		) @@ plainto_tsquery('english', $1)
		AND o.deadline > NOW()
		ORDER BY rank DESC, o.created_at DESC
		LIMIT $2 OFFSET $3
	`, joinColumns(opportunityColumns))

	rows, err := r.db.Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error searching opportunities: %w", err)
	}
	defer rows.Close()

	var opportunities []*models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows, nil)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunity rows: %w", err)
	}

	if opportunities == nil {
		opportunities = []*models.Opportunity{}
	}

	return opportunities, nil
}

// joinColumns renders a select list for raw queries
func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
