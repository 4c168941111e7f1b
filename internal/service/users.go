package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/id"
	"github.com/storefrontapp/storefront-server/internal/store/sqlite"
)

// CreateUserInput is a new admin account request.
type CreateUserInput struct {
	Username string      `json:"username" validate:"required,min=3,max=64"`
	Password string      `json:"password" validate:"required,min=4,max=1024"`
	Name     string      `json:"name" validate:"max=128"`
	Role     domain.Role `json:"role" validate:"required,oneof=owner manager editor staff viewer"`
}

// UpdateUserInput carries changes to an existing account. Nil fields
// stay untouched.
type UpdateUserInput struct {
	Password *string      `json:"password,omitempty" validate:"omitempty,min=4,max=1024"`
	Name     *string      `json:"name,omitempty" validate:"omitempty,max=128"`
	Role     *domain.Role `json:"role,omitempty" validate:"omitempty,oneof=owner manager editor staff viewer"`
}

// ListUsers returns all admin accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListUsers(ctx)
}

// CreateUser creates an admin account.
func (s *AdminService) CreateUser(ctx context.Context, actor *auth.AccessClaims, input CreateUserInput) (*domain.User, error) {
	if _, err := s.users.GetUserByUsername(ctx, input.Username); err == nil {
		return nil, errors.Conflictf("username %s is taken", input.Username)
	} else if !errors.Is(err, sqlite.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           id.MustGenerate("usr"),
		Username:     input.Username,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit(ctx, actor, "users.create", map[string]any{"id": user.ID, "username": user.Username, "role": user.Role})
	s.logger.Info("admin account created", "username", user.Username, "role", user.Role, "actor", actor.Username)
	return user, nil
}

// UpdateUser applies partial changes to an admin account.
func (s *AdminService) UpdateUser(ctx context.Context, actor *auth.AccessClaims, userID string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sqlite.ErrUserNotFound) {
			return nil, errors.NotFoundf("user %s not found", userID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		// The last owner cannot demote themselves out of existence.
		if user.Role == domain.RoleOwner && *input.Role != domain.RoleOwner {
			if err := s.ensureAnotherOwner(ctx, userID); err != nil {
				return nil, err
			}
		}
		user.Role = *input.Role
	}
	user.Touch()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit(ctx, actor, "users.update", map[string]any{"id": user.ID, "username": user.Username, "role": user.Role})
	return user, nil
}

// DeleteUser removes an admin account.
func (s *AdminService) DeleteUser(ctx context.Context, actor *auth.AccessClaims, userID string) error {
	if actor.UserID == userID {
		return errors.Forbidden("cannot delete your own account")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sqlite.ErrUserNotFound) {
			return errors.NotFoundf("user %s not found", userID)
		}
		return fmt.Errorf("load user: %w", err)
	}
	if user.Role == domain.RoleOwner {
		if err := s.ensureAnotherOwner(ctx, userID); err != nil {
			return err
		}
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit(ctx, actor, "users.delete", map[string]any{"id": userID, "username": user.Username})
	s.logger.Info("admin account deleted", "username", user.Username, "actor", actor.Username)
	return nil
}

// ensureAnotherOwner fails unless an owner other than excludeID exists.
func (s *AdminService) ensureAnotherOwner(ctx context.Context, excludeID string) error {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.Role == domain.RoleOwner && u.ID != excludeID {
			return nil
		}
	}
	return errors.Forbidden("at least one owner account must remain")
}
