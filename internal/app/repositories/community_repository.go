package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/db"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/dberrors"
)

// CommunityRepository handles database operations for communities and membership
type CommunityRepository struct {
	db *pgxpool.Pool
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// Create inserts a community and enrolls the creator as its first member in
// one transaction, so member_count starts at 1
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) (int64, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO communities (name, description, category, is_public, member_count, created_by)
			VALUES ($1, $2, $3, $4, 1, $5)
			RETURNING id, created_at, updated_at
		`, community.Name, community.Description, community.Category, community.IsPublic, community.CreatedBy).
			Scan(&community.ID, &community.CreatedAt, &community.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "communities_name_key") {
				return apperrors.ErrCommunityNameTaken
			}
			return fmt.Errorf("error creating community: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO community_members (community_id, user_id)
			VALUES ($1, $2)
		`, community.ID, community.CreatedBy)
		if err != nil {
			return fmt.Errorf("error enrolling creator: %w", err)
		}

		community.MemberCount = 1
		return nil
	})
	if err != nil {
		return 0, err
	}

	return community.ID, nil
}

// GetByID retrieves a community with its creator joined in. viewerID > 0 also
// resolves the viewer's membership flag.
func (r *CommunityRepository) GetByID(ctx context.Context, id, viewerID int64) (*models.Community, error) {
	query := `
		SELECT c.id, c.name, c.description, c.category, c.is_public, c.member_count,
		       c.created_by, c.created_at, c.updated_at,
		       u.username, u.full_name,
		       EXISTS(SELECT 1 FROM community_members m WHERE m.community_id = c.id AND m.user_id = $2)
		FROM communities c
		LEFT JOIN users u ON c.created_by = u.id
		WHERE c.id = $1
	`

	var community models.Community
	var username, fullName *string
	err := r.db.QueryRow(ctx, query, id, viewerID).Scan(
		&community.ID, &community.Name, &community.Description, &community.Category,
		&community.IsPublic, &community.MemberCount,
		&community.CreatedBy, &community.CreatedAt, &community.UpdatedAt,
		&username, &fullName,
		&community.IsMember,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error retrieving community: %w", err)
	}

	if username != nil {
		community.Creator = &models.User{ID: community.CreatedBy, Username: *username}
		if fullName != nil {
			community.Creator.FullName = *fullName
		}
	}

	return &community, nil
}

// GetAll lists communities ordered by size, then recency for ties
func (r *CommunityRepository) GetAll(ctx context.Context, filter dto.CommunityFilter, limit int, offset uint64) ([]*models.Community, int64, error) {
	qb := squirrel.Select(
		"c.id", "c.name", "c.description", "c.category", "c.is_public", "c.member_count",
		"c.created_by", "c.created_at", "c.updated_at",
		"COUNT(*) OVER() AS total_count",
	).
		From("communities c").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Category != nil {
		qb = qb.Where("c.category = ?", *filter.Category)
	}
	if filter.CreatedBy != nil {
		qb = qb.Where("c.created_by = ?", *filter.CreatedBy)
	}
	if filter.PublicOnly {
		qb = qb.Where("c.is_public = TRUE")
	}

	sql, args, err := qb.OrderBy("c.member_count DESC", "c.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving communities: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	var total int64
	for rows.Next() {
		var c models.Community
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Category, &c.IsPublic, &c.MemberCount,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning community row: %w", err)
		}
		communities = append(communities, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating community rows: %w", err)
	}

	if communities == nil {
		communities = []*models.Community{}
	}

	return communities, total, nil
}

// GetMemberships lists communities the user belongs to
func (r *CommunityRepository) GetMemberships(ctx context.Context, userID int64) ([]*models.Community, error) {
	query := `
		SELECT c.id, c.name, c.description, c.category, c.is_public, c.member_count,
		       c.created_by, c.created_at, c.updated_at
		FROM communities c
		JOIN community_members m ON m.community_id = c.id
		WHERE m.user_id = $1
		ORDER BY m.joined_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving memberships: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		var c models.Community
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Category, &c.IsPublic, &c.MemberCount,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning community row: %w", err)
		}
		c.IsMember = true
		communities = append(communities, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community rows: %w", err)
	}

	if communities == nil {
		communities = []*models.Community{}
	}

	return communities, nil
}

// Update updates mutable fields; nil values keep the current column value
func (r *CommunityRepository) Update(ctx context.Context, id int64, req *dto.UpdateCommunityRequest) error {
	query := `
		UPDATE communities
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    category = COALESCE($3, category),
		    is_public = COALESCE($4, is_public),
		    updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.db.Exec(ctx, query, req.Name, req.Description, req.Category, req.IsPublic, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "communities_name_key") {
			return apperrors.ErrCommunityNameTaken
		}
		return fmt.Errorf("error updating community: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommunityNotFound
	}
	return nil
}

// Delete removes a community along with its membership rows and posts
func (r *CommunityRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM community_members WHERE community_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting community members: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM post_comments WHERE post_id IN (SELECT id FROM posts WHERE community_id = $1)
		`, id); err != nil {
			return fmt.Errorf("error deleting community post comments: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM post_likes WHERE post_id IN (SELECT id FROM posts WHERE community_id = $1)
		`, id); err != nil {
			return fmt.Errorf("error deleting community post likes: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE community_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting community posts: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM communities WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting community: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrCommunityNotFound
		}
		return nil
	})
}

// Join adds a membership row and bumps member_count atomically
func (r *CommunityRepository) Join(ctx context.Context, communityID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			INSERT INTO community_members (community_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (community_id, user_id) DO NOTHING
		`, communityID, userID)
		if err != nil {
			return fmt.Errorf("error joining community: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrAlreadyMember
		}

		result, err = tx.Exec(ctx,
			`UPDATE communities SET member_count = member_count + 1 WHERE id = $1`, communityID)
		if err != nil {
			return fmt.Errorf("error updating member count: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrCommunityNotFound
		}
		return nil
	})
}

// Leave removes a membership row and drops member_count atomically
func (r *CommunityRepository) Leave(ctx context.Context, communityID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`DELETE FROM community_members WHERE community_id = $1 AND user_id = $2`,
			communityID, userID)
		if err != nil {
			return fmt.Errorf("error leaving community: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrNotMember
		}

		_, err = tx.Exec(ctx,
			`UPDATE communities SET member_count = GREATEST(member_count - 1, 0) WHERE id = $1`,
			communityID)
		if err != nil {
			return fmt.Errorf("error updating member count: %w", err)
		}
		return nil
	})
}

// IsMember reports whether the user belongs to the community
func (r *CommunityRepository) IsMember(ctx context.Context, communityID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM community_members WHERE community_id = $1 AND user_id = $2)`,
		communityID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return exists, nil
}

// communitySearchQuery ranks public communities against a query term. Name
// matches weigh above description matches; equally ranked rows fall back to
// size then recency.
const communitySearchQuery = `
	SELECT c.id, c.name, c.description, c.category, c.is_public, c.member_count,
	       c.created_by, c.created_at, c.updated_at
	FROM communities c,
	ts_rank(
		setweight(to_tsvector('english', c.name), 'A') ||
		setweight(to_tsvector('english', c.description), 'B'),
		plainto_tsquery('english', $1)
	) AS rank
	WHERE (
		setweight(to_tsvector('english', c.name), 'A') ||
		setweight(to_tsvector('english', c.description), 'B')
	) @@ plainto_tsquery('english', $1)
	AND c.is_public = TRUE
	ORDER BY rank DESC, c.member_count DESC, c.created_at DESC
	LIMIT $2 OFFSET $3
`

// Search ranks public communities matching the term, best match first
func (r *CommunityRepository) Search(ctx context.Context, term string, limit, offset int) ([]*models.Community, error) {
	rows, err := r.db.Query(ctx, communitySearchQuery, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error searching communities: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		var c models.Community
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Category, &c.IsPublic, &c.MemberCount,
			&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning community row: %w", err)
		}
		communities = append(communities, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating community rows: %w", err)
	}

	if communities == nil {
		communities = []*models.Community{}
	}

	return communities, nil
}
