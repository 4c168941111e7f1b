package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/id"
	"github.com/storefrontapp/storefront-server/internal/store/sqlite"
)

// AuthService handles admin login and token verification.
type AuthService struct {
	users  *sqlite.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(users *sqlite.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// LoginResult is a successful login: the issued token and its subject.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// Login verifies credentials and issues an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sqlite.ErrUserNotFound) {
			return nil, errors.InvalidCredentials("invalid username or password")
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		s.logger.Warn("failed login attempt", "username", username)
		return nil, errors.InvalidCredentials("invalid username or password")
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("admin logged in", "username", username, "role", user.Role)
	return &LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.AccessTokenDuration()),
		User:      user,
	}, nil
}

// Verify validates an access token and returns its claims.
func (s *AuthService) Verify(token string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// defaultUsers are created on first start, one per working role, each
// with their username as the initial password.
var defaultUsers = []struct {
	username string
	role     domain.Role
}{
	{"owner", domain.RoleOwner},
	{"manager", domain.RoleManager},
	{"editor", domain.RoleEditor},
	{"staff", domain.RoleStaff},
}

// EnsureSeedUsers creates the default admin accounts when the user
// table is empty.
func (s *AuthService) EnsureSeedUsers(ctx context.Context) error {
	n, err := s.users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, def := range defaultUsers {
		hash, err := auth.HashPassword(def.username)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		user := &domain.User{
			ID:           id.MustGenerate("usr"),
			Username:     def.username,
			PasswordHash: hash,
			Role:         def.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", def.username, err)
		}
	}

	s.logger.Warn("seeded default admin accounts, change their passwords",
		"usernames", []string{"owner", "manager", "editor", "staff"})
	return nil
}
