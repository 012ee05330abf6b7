package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/feastline/menu-api/internal/auth"
	"github.com/feastline/menu-api/internal/models"
	"github.com/feastline/menu-api/internal/models/dto"
	"github.com/feastline/menu-api/internal/storage"
)

// UserService owns registration, login, and role transitions.
type UserService struct {
	store  storage.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	log    *slog.Logger
}

// NewUserService constructs the service.
func NewUserService(store storage.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log *slog.Logger) *UserService {
	return &UserService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new account with role "user". Email and username are
// checked before insert; the store's unique indexes backstop the race between
// concurrent registrations, which surfaces as the same conflict.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	if _, err := s.store.FindUserByEmail(ctx, req.Email); err == nil {
		return models.User{}, Conflict("Email already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("look up email %s: %w", req.Email, err)
	}

	if _, err := s.store.FindUserByUsername(ctx, req.Username); err == nil {
		return models.User{}, Conflict("Username already exists")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("look up username %s: %w", req.Username, err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, models.User{
		Username:       req.Username,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		HashedPassword: hashed,
		Role:           models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, Conflict("User already exists")
		}
		return models.User{}, fmt.Errorf("create user %s: %w", req.Email, err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password produce the identical failure so the response leaks
// neither cause.
func (s *UserService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("login rejected", "email", email)
			return "", models.User{}, Unauthenticated("Invalid email or password")
		}
		return "", models.User{}, fmt.Errorf("look up email %s: %w", email, err)
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		s.log.Warn("login rejected", "email", email)
		return "", models.User{}, Unauthenticated("Invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue token for user %d: %w", user.ID, err)
	}
	return token, user, nil
}

// PromoteToAdmin is the only mutating role transition. Admins and
// super-admins are rejected rather than silently re-promoted or demoted.
func (s *UserService) PromoteToAdmin(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, NotFound("User not found")
		}
		return models.User{}, fmt.Errorf("look up user %d: %w", userID, err)
	}

	switch user.Role {
	case models.RoleAdmin:
		return models.User{}, Conflict("User is already an admin")
	case models.RoleSuperAdmin:
		return models.User{}, Conflict("User is already a super-admin and cannot be set to admin")
	}

	updated, err := s.store.UpdateUserRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return models.User{}, fmt.Errorf("update role for user %d: %w", userID, err)
	}
	return updated, nil
}
