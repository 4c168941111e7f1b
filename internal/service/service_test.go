package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/search"
	"github.com/storefrontapp/storefront-server/internal/sheetpush"
	"github.com/storefrontapp/storefront-server/internal/store"
	"github.com/storefrontapp/storefront-server/internal/store/sqlite"
)

type fixture struct {
	store   *store.Store
	users   *sqlite.Store
	index   *search.Index
	catalog *CatalogService
	admin   *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	st, err := store.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	users, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = users.Close() })

	index, err := search.NewMemIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	catalog := NewCatalogService(st, index, logger)
	admin := NewAdminService(st, users, sheetpush.New("", logger), catalog, logger)

	return &fixture{store: st, users: users, index: index, catalog: catalog, admin: admin}
}

func ownerClaims() *auth.AccessClaims {
	return &auth.AccessClaims{UserID: "usr-owner", Username: "owner", Role: "owner"}
}

func testContext() context.Context {
	return context.Background()
}
