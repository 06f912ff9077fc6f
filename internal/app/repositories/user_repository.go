package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/dberrors"
)

// UserRepository handles database operations for users, profiles and settings
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and assigns the generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, username, full_name, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.Username, user.FullName, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, username, full_name, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Password, &user.Username,
		&user.FullName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, username, full_name, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Username,
		&user.FullName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// GetByIDs retrieves multiple users in one query
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	query := `
		SELECT id, email, password, username, full_name, is_admin, created_at, updated_at
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users by ids: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.Username,
			&user.FullName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}

// UpdateFullName updates the display name on the user row
func (r *UserRepository) UpdateFullName(ctx context.Context, userID int64, fullName string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET full_name = $1, updated_at = NOW() WHERE id = $2`, fullName, userID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateEmail replaces the account email
func (r *UserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`, email, userID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating email: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetAdmin promotes or demotes a user
func (r *UserRepository) SetAdmin(ctx context.Context, userID int64, isAdmin bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET is_admin = $1, updated_at = NOW() WHERE id = $2`, isAdmin, userID)
	if err != nil {
		return fmt.Errorf("error updating admin flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetAll retrieves users with pagination, newest first
func (r *UserRepository) GetAll(ctx context.Context, limit, offset int) ([]*models.User, int64, error) {
	query := `
		SELECT id, email, password, username, full_name, is_admin, created_at, updated_at,
			COUNT(*) OVER() AS total_count
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	var total int64
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.Username,
			&user.FullName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// GetProfile retrieves a user's profile row, creating it lazily when absent
func (r *UserRepository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, bio, location, field, avatar_url, updated_at
	`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.Bio, &profile.Location,
		&profile.Field, &profile.AvatarURL, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &profile, nil
}

// UpdateProfile updates the profile row; nil fields keep their current value
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, bio, location, field, avatarURL *string) error {
	query := `
		UPDATE profiles
		SET bio = COALESCE($1, bio),
		    location = COALESCE($2, location),
		    field = COALESCE($3, field),
		    avatar_url = COALESCE($4, avatar_url),
		    updated_at = NOW()
		WHERE user_id = $5
	`

	result, err := r.db.Exec(ctx, query, bio, location, field, avatarURL, userID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetSettings retrieves a user's settings row, creating defaults lazily when absent
func (r *UserRepository) GetSettings(ctx context.Context, userID int64) (*models.Settings, error) {
	query := `
		INSERT INTO settings (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, profile_visible, notifications_enabled, language, updated_at
	`

	var settings models.Settings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID, &settings.ProfileVisible,
		&settings.NotificationsEnabled, &settings.Language, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error retrieving settings: %w", err)
	}

	return &settings, nil
}

// UpdateSettings updates preference fields; nil fields keep their current value
func (r *UserRepository) UpdateSettings(ctx context.Context, userID int64, profileVisible, notificationsEnabled *bool, language *string) error {
	query := `
		UPDATE settings
		SET profile_visible = COALESCE($1, profile_visible),
		    notifications_enabled = COALESCE($2, notifications_enabled),
		    language = COALESCE($3, language),
		    updated_at = NOW()
		WHERE user_id = $4
	`

	result, err := r.db.Exec(ctx, query, profileVisible, notificationsEnabled, language, userID)
	if err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Search ranks users against a query term over username and full name
func (r *UserRepository) Search(ctx context.Context, term string, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT id, email, password, username, full_name, is_admin, created_at, updated_at
		FROM users
		WHERE to_tsvector('simple', username || ' ' || full_name) @@ plainto_tsquery('simple', $1)
		   OR username ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.Username,
			&user.FullName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}
