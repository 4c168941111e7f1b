package sqlite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(id, username string, role domain.Role) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$fakehash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u := testUser("usr-1", "owner", domain.RoleOwner)
	require.NoError(t, s.CreateUser(ctx, u))

	got, err := s.GetUserByUsername(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "usr-1", got.ID)
	assert.Equal(t, domain.RoleOwner, got.Role)

	got.Name = "The Owner"
	got.Touch()
	require.NoError(t, s.UpdateUser(ctx, got))

	got, err = s.GetUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "The Owner", got.Name)

	n, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.DeleteUser(ctx, "usr-1"))
	_, err = s.GetUser(ctx, "usr-1")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, "usr-1"), ErrUserNotFound)
}

func TestListUsersOrdered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("u2", "manager", domain.RoleManager)))
	require.NoError(t, s.CreateUser(ctx, testUser("u1", "editor", domain.RoleEditor)))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "editor", users[0].Username)
	assert.Equal(t, "manager", users[1].Username)
}

func TestAuditAppendAndTrim(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < domain.MaxAuditEntries+10; i++ {
		err := s.AppendAudit(ctx, &domain.AuditEntry{
			ID:    fmt.Sprintf("aud-%06d", i),
			At:    base.Add(time.Duration(i) * time.Second),
			Actor: "owner",
			Event: "product.update",
		})
		require.NoError(t, err)
	}

	entries, err := s.ListAudit(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, domain.MaxAuditEntries, "log is capped")

	// Newest first; the oldest ten were trimmed.
	assert.Equal(t, fmt.Sprintf("aud-%06d", domain.MaxAuditEntries+9), entries[0].ID)
	assert.Equal(t, fmt.Sprintf("aud-%06d", 10), entries[len(entries)-1].ID)

	limited, err := s.ListAudit(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, limited, 5)
}
