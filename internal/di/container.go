// Package di provides dependency injection configuration for the
// storefront server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/di/providers"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/service"
	"github.com/storefrontapp/storefront-server/internal/sheetpush"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideUserStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// External sources
	do.Provide(injector, providers.ProvideSheetClient)
	do.Provide(injector, providers.ProvideDriveClient)
	do.Provide(injector, providers.ProvideSheetPusher)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAdminService)

	// Workers
	do.Provide(injector, providers.ProvideSyncWorker)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.UserStoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.SheetClientHandle](injector)
	_ = do.MustInvoke[*providers.DriveClientHandle](injector)
	_ = do.MustInvoke[*sheetpush.Pusher](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SyncWorkerHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
