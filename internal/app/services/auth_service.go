package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
	"github.com/ladderhq/ladder/internal/pkg/auth"
	"github.com/ladderhq/ladder/internal/pkg/email"
	"github.com/ladderhq/ladder/internal/pkg/logger"
)

const (
	passwordResetTokenTTL = 1 * time.Hour
	emailChangeTokenTTL   = 24 * time.Hour
)

// AuthService handles registration, login, and the token-based account flows
type AuthService struct {
	userRepo        *repositories.UserRepository
	resetTokenRepo  *repositories.PasswordResetTokenRepository
	changeTokenRepo *repositories.EmailChangeTokenRepository
	jwtService      *auth.JWTService
	emailSender     email.Sender
	baseURL         string
}

// NewAuthService creates a new AuthService
func NewAuthService(repos *repositories.Repositories, jwtService *auth.JWTService, emailSender email.Sender, baseURL string) *AuthService {
	return &AuthService{
		userRepo:        repos.UserRepository,
		resetTokenRepo:  repos.PasswordResetTokenRepository,
		changeTokenRepo: repos.EmailChangeTokenRepository,
		jwtService:      jwtService,
		emailSender:     emailSender,
		baseURL:         baseURL,
	}
}

// SignUp registers a new account and returns it with a fresh token
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Username: req.Username,
		FullName: req.FullName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User registered")

	return &dto.AuthResponse{User: user, Token: token, ExpiresIn: int64(expiresIn)}, nil
}

// SignIn authenticates credentials and returns the account with a fresh
// token. A missing account and a wrong password both map to the same error so
// responses do not reveal which emails are registered.
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.AuthResponse{User: user, Token: token, ExpiresIn: int64(expiresIn)}, nil
}

// ForgotPassword issues a reset token and emails the reset link. An unknown
// email is treated as success so the endpoint cannot be used to probe
// registered accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
		return nil
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(passwordResetTokenTTL),
	}

	if err := s.resetTokenRepo.Create(ctx, token); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nUse the link below to reset your password. The link expires in 1 hour.\n\n%s/reset-password?token=%s\n\nIf you did not request this, you can ignore this email.",
		user.FullName, s.baseURL, token.Token,
	)

	if err := s.emailSender.Send(user.Email, "Reset your password", body); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	token, err := s.resetTokenRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}

	if token.Used {
		return apperrors.ErrTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return err
	}

	if err := s.resetTokenRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	logger.Info().Int64("user_id", token.UserID).Msg("Password reset completed")
	return nil
}

// RequestEmailChange verifies the current password, then issues a
// confirmation token to the new address
func (s *AuthService) RequestEmailChange(ctx context.Context, userID int64, req *dto.ChangeEmailRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return apperrors.ErrInvalidCredentials
	}

	taken, err := s.userRepo.EmailExists(ctx, req.NewEmail)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrEmailAlreadyExists
	}

	token := &models.EmailChangeToken{
		UserID:    userID,
		NewEmail:  req.NewEmail,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(emailChangeTokenTTL),
	}

	if err := s.changeTokenRepo.Create(ctx, token); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nConfirm your new email address with the link below. The link expires in 24 hours.\n\n%s/confirm-email?token=%s",
		user.FullName, s.baseURL, token.Token,
	)

	if err := s.emailSender.Send(req.NewEmail, "Confirm your new email address", body); err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to send email change confirmation")
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

// ConfirmEmailChange consumes a confirmation token and switches the account's
// email
func (s *AuthService) ConfirmEmailChange(ctx context.Context, tokenValue string) error {
	token, err := s.changeTokenRepo.GetByToken(ctx, tokenValue)
	if err != nil {
		return err
	}

	if token.Used {
		return apperrors.ErrTokenUsed
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}

	if err := s.userRepo.UpdateEmail(ctx, token.UserID, token.NewEmail); err != nil {
		return err
	}

	if err := s.changeTokenRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}

	logger.Info().Int64("user_id", token.UserID).Msg("Email change completed")
	return nil
}

// CleanupExpiredTokens removes stale reset and email change tokens. Runs on a
// schedule from the bootstrap cron.
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) {
	resetCount, err := s.resetTokenRepo.DeleteExpired(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to clean up password reset tokens")
	}

	changeCount, err := s.changeTokenRepo.DeleteExpired(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to clean up email change tokens")
	}

	if resetCount > 0 || changeCount > 0 {
		logger.Info().
			Int64("reset_tokens", resetCount).
			Int64("email_change_tokens", changeCount).
			Msg("Expired tokens removed")
	}
}
