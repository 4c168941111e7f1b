package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/service"
	"github.com/storefrontapp/storefront-server/internal/sheetpush"
)

// ProvideCatalogService provides the read-side catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.Index, log.Logger), nil
}

// ProvideAuthService provides the admin authentication service and
// seeds the default users on a fresh database.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	usersHandle := do.MustInvoke[*UserStoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewAuthService(usersHandle.Store, tokens, log.Logger)
	if err := svc.EnsureSeedUsers(context.Background()); err != nil {
		return nil, err
	}

	return svc, nil
}

// ProvideAdminService provides the back-office write service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	usersHandle := do.MustInvoke[*UserStoreHandle](i)
	pusher := do.MustInvoke[*sheetpush.Pusher](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(storeHandle.Store, usersHandle.Store, pusher, catalog, log.Logger), nil
}
