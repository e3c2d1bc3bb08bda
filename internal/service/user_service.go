package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/repository"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// UserService covers profile management and the admin user surface.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the user record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ProfileUpdate carries mutable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Username *string
	Email    *string
}

// UpdateProfile applies profile changes. The stored password hash is
// untouched by this path regardless of what else changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < 3 || len(username) > 30 {
			return nil, apperrors.NewValidationError("username must be 3-30 characters", nil)
		}
		if username != user.Username {
			if _, err := s.users.GetByUsername(ctx, username); err == nil {
				return nil, apperrors.NewConflict("username already taken", nil)
			} else if err != pgx.ErrNoRows {
				return nil, err
			}
			user.Username = username
		}
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperrors.NewValidationError("invalid email address", nil)
		}
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, apperrors.NewConflict("email already registered", nil)
			} else if err != pgx.ErrNoRows {
				return nil, err
			}
			user.Email = email
			user.EmailVerified = false
		}
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers pages through accounts (admin surface).
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// Deactivate soft-disables an account (admin surface). Accounts are
// never hard-deleted here.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.users.SetActive(ctx, userID, false)
}

// Reactivate re-enables a previously deactivated account.
func (s *UserService) Reactivate(ctx context.Context, userID string) error {
	return s.users.SetActive(ctx, userID, true)
}
