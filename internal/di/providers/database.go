package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/store"
	"github.com/storefrontapp/storefront-server/internal/store/sqlite"
)

// StoreHandle wraps the catalog cache store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the catalog cache store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cachePath := filepath.Join(cfg.Data.BasePath, "cache")
	db, err := store.Open(cachePath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog cache initialized", "path", cachePath)

	return &StoreHandle{Store: db}, nil
}

// UserStoreHandle wraps the user and audit database with shutdown capability.
type UserStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *UserStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideUserStore provides the sqlite user and audit database.
func ProvideUserStore(i do.Injector) (*UserStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "users.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("User database initialized", "path", dbPath)

	return &UserStoreHandle{Store: db}, nil
}
