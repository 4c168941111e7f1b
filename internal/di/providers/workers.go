package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/service"
	"github.com/storefrontapp/storefront-server/internal/sync"
)

// SyncWorkerHandle wraps the catalog sync worker with shutdown capability.
type SyncWorkerHandle struct {
	*sync.Worker
}

// Shutdown implements do.Shutdownable.
func (h *SyncWorkerHandle) Shutdown() error {
	return h.Worker.Shutdown()
}

// ProvideSyncWorker provides the periodic catalog refresh worker and
// starts its loop when a sheet source is configured.
func ProvideSyncWorker(i do.Injector) (*SyncWorkerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sheetHandle := do.MustInvoke[*SheetClientHandle](i)
	driveHandle := do.MustInvoke[*DriveClientHandle](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Keep the image source a true nil interface when Drive is off.
	var images sync.ImageSource
	if driveHandle.Client != nil {
		images = driveHandle.Client
	}

	worker := sync.New(cfg, sheetHandle.Client, images, catalog, storeHandle.Store, log.Logger)
	worker.Start()

	return &SyncWorkerHandle{Worker: worker}, nil
}
