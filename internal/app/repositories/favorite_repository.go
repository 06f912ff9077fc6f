package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoriteRepository handles database operations for opportunity favorites
type FavoriteRepository struct {
	db *pgxpool.Pool
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle flips the favorite state for (user, opportunity) and returns the
// resulting state. The insert is attempted first; when the row already exists
// the pair is removed instead. ON CONFLICT keeps concurrent toggles from
// raising a unique violation.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, opportunityID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, opportunity_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, opportunity_id) DO NOTHING
	`, userID, opportunityID)
	if err != nil {
		return false, fmt.Errorf("error adding favorite: %w", err)
	}

	if result.RowsAffected() > 0 {
		return true, nil
	}

	_, err = r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND opportunity_id = $2`,
		userID, opportunityID,
	)
	if err != nil {
		return false, fmt.Errorf("error removing favorite: %w", err)
	}

	return false, nil
}

// GetOpportunityIDs lists the opportunity IDs the user favorited, newest
// favorite first
func (r *FavoriteRepository) GetOpportunityIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT opportunity_id
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving favorites: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning favorite row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	if ids == nil {
		ids = []int64{}
	}

	return ids, nil
}

// IsFavorited reports whether the user has the opportunity favorited
func (r *FavoriteRepository) IsFavorited(ctx context.Context, userID, opportunityID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND opportunity_id = $2)`,
		userID, opportunityID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking favorite existence: %w", err)
	}
	return exists, nil
}
