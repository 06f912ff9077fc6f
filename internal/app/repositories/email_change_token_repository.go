package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// EmailChangeTokenRepository handles database operations for email change tokens
type EmailChangeTokenRepository struct {
	db *pgxpool.Pool
}

// NewEmailChangeTokenRepository creates a new EmailChangeTokenRepository
func NewEmailChangeTokenRepository(db *pgxpool.Pool) *EmailChangeTokenRepository {
	return &EmailChangeTokenRepository{db: db}
}

// Create stores a new email change token, invalidating older unused ones for
// the same user
func (r *EmailChangeTokenRepository) Create(ctx context.Context, token *models.EmailChangeToken) error {
	_, err := r.db.Exec(ctx,
		`UPDATE email_change_tokens SET used = TRUE WHERE user_id = $1 AND used = FALSE`,
		token.UserID)
	if err != nil {
		return fmt.Errorf("error invalidating previous tokens: %w", err)
	}

	query := `
		INSERT INTO email_change_tokens (user_id, new_email, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query, token.UserID, token.NewEmail, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating email change token: %w", err)
	}

	return nil
}

// GetByToken retrieves a token row by its value
func (r *EmailChangeTokenRepository) GetByToken(ctx context.Context, tokenValue string) (*models.EmailChangeToken, error) {
	query := `
		SELECT id, user_id, new_email, token, expires_at, used, created_at
		FROM email_change_tokens
		WHERE token = $1
	`

	var token models.EmailChangeToken
	err := r.db.QueryRow(ctx, query, tokenValue).Scan(
		&token.ID, &token.UserID, &token.NewEmail, &token.Token,
		&token.ExpiresAt, &token.Used, &token.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving email change token: %w", err)
	}

	return &token, nil
}

// MarkUsed consumes a token so it cannot be replayed
func (r *EmailChangeTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE email_change_tokens SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking token used: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeleteExpired purges tokens past their expiry, returning how many were removed
func (r *EmailChangeTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM email_change_tokens WHERE expires_at < $1`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return result.RowsAffected(), nil
}
