package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/dailyaura/journal-service/internal/apperr"
	"github.com/dailyaura/journal-service/internal/models"
	"github.com/dailyaura/journal-service/internal/repository"
	"github.com/dailyaura/journal-service/internal/token"
)

// resetTokenTTL is the validity window of a password reset token.
const resetTokenTTL = 15 * time.Minute

// invalidCredentials is the collapsed response for unknown email, wrong
// password and federated-only accounts, so the login endpoint cannot be
// used to enumerate registered emails.
const invalidCredentials = "Invalid email or password."

// GoogleProfile is the part of a federated identity profile this service
// consumes after the provider handshake.
type GoogleProfile struct {
	Email string
	Name  string
}

// AuthService handles registration, login and the password lifecycle
type AuthService struct {
	users       UserStore
	tokens      *token.Issuer
	mailer      Mailer
	log         *logrus.Logger
	frontendURL string
}

// NewAuthService initializes a new auth service
func NewAuthService(users UserStore, tokens *token.Issuer, mailer Mailer, log *logrus.Logger, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		log:         log,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

// Register creates a new user with a hashed password. No token is issued;
// the user logs in afterwards.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	var missing []string
	if username == "" {
		missing = append(missing, "username")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return apperr.Validation("All fields are required!", missing...)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: nullString(string(hashedPassword)),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperr.Conflict("Email already in use!")
		}
		return apperr.Internal(err)
	}

	s.log.Infof("User registered: %s", user.Email)
	return nil
}

// Login verifies a password and issues a bearer token bound to the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.Profile, error) {
	if email == "" || password == "" {
		return "", nil, apperr.Validation("Email and password are required!")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperr.Unauthorized(invalidCredentials)
		}
		return "", nil, apperr.Internal(err)
	}

	// Federated-only accounts have no hash to compare against.
	if !user.HasPassword() {
		return "", nil, apperr.Unauthorized(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash.String), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized(invalidCredentials)
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, user.Profile(), nil
}

// Profile returns the sanitized user record for the acting user
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.Internal(err)
	}
	return user.Profile(), nil
}

// ChangePassword replaces the password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperr.Validation("Both current and new password are required")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return apperr.Internal(err)
	}

	if !user.HasPassword() || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash.String), []byte(currentPassword)) != nil {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return apperr.Internal(err)
	}

	s.log.Infof("Password changed for user %d", user.ID)
	return nil
}

// ForgotPassword stores a fresh single-use reset token on the user and mails
// a reset link. A new request supersedes any outstanding token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("Email is required")
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("No user found with this email")
		}
		return apperr.Internal(err)
	}

	resetToken, err := token.RandomToken()
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to generate reset token: %w", err))
	}
	expiry := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return apperr.Internal(err)
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, resetToken)
	if err := s.mailer.SendPasswordReset(user.Email, user.Username, resetLink); err != nil {
		return apperr.Internal(fmt.Errorf("failed to send reset email: %w", err))
	}

	s.log.Infof("Password reset requested for %s", user.Email)
	return nil
}

// ResetPassword consumes a reset token: the password update and the token
// clearing happen in one store operation, so a token can never be replayed.
// Unknown and expired tokens are indistinguishable to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if newPassword == "" {
		return apperr.Validation("New password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}
	if err := s.users.ResetPasswordByToken(ctx, resetToken, string(hashedPassword)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Validation("Invalid or expired token")
		}
		return apperr.Internal(err)
	}

	s.log.Info("Password reset completed")
	return nil
}

// LoginWithGoogle finds or creates the user for a federated profile and
// issues a bearer token. Two first-time logins racing on the same email are
// resolved by the unique constraint: the loser re-reads the winner's row.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (string, error) {
	if profile.Email == "" {
		return "", apperr.Unauthorized("Google profile has no email address")
	}

	user, err := s.users.FindUserByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{
			Username: profile.Name,
			Email:    profile.Email,
			// no PasswordHash: the account is federated-only
		}
		err = s.users.CreateUser(ctx, user)
		if errors.Is(err, repository.ErrDuplicateEmail) {
			user, err = s.users.FindUserByEmail(ctx, profile.Email)
		}
	}
	if err != nil {
		return "", apperr.Internal(err)
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	s.log.Infof("Google login for %s", user.Email)
	return tokenString, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
