package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/auth"
	"github.com/ladderhq/ladder/internal/pkg/logger"
)

const (
	defaultAdminEmail    = "admin@ladder.app"
	defaultAdminUsername = "admin"
)

// CreateDefaultData seeds the initial admin account when none exists. The
// password comes from ADMIN_PASSWORD; without it no account is created, so
// production deployments must opt in explicitly.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := repositories.NewUserRepository(dbPool)

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		logger.Debug().Msg("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    defaultAdminEmail,
		Password: hash,
		Username: defaultAdminUsername,
		FullName: "Platform Admin",
		IsAdmin:  true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) || errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			logger.Debug().Msg("Admin account already exists, skipping seed")
			return nil
		}
		return err
	}

	if err := userRepo.SetAdmin(ctx, admin.ID, true); err != nil {
		return err
	}

	logger.Info().Int64("user_id", admin.ID).Msg("Admin account seeded")
	return nil
}
