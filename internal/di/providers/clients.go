package providers

import (
	"github.com/samber/do/v2"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/drive"
	"github.com/storefrontapp/storefront-server/internal/logger"
	"github.com/storefrontapp/storefront-server/internal/sheetpush"
	"github.com/storefrontapp/storefront-server/internal/sheets"
)

// SheetClientHandle wraps the Google Sheets client with shutdown capability.
type SheetClientHandle struct {
	*sheets.Client
}

// Shutdown implements do.Shutdownable.
func (h *SheetClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideSheetClient provides the Google Sheets tab reader.
func ProvideSheetClient(i do.Injector) (*SheetClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := sheets.New(cfg.Sheet.ID, log.Logger)
	if cfg.SheetSyncEnabled() {
		log.Info("Sheet source configured", "sheet_id", cfg.Sheet.ID)
	} else {
		log.Info("Sheet sync disabled, serving cached catalog only")
	}

	return &SheetClientHandle{Client: client}, nil
}

// DriveClientHandle wraps the Google Drive client. Client is nil when
// image indexing is not configured.
type DriveClientHandle struct {
	*drive.Client
}

// Shutdown implements do.Shutdownable.
func (h *DriveClientHandle) Shutdown() error {
	if h.Client != nil {
		h.Close()
	}
	return nil
}

// ProvideDriveClient provides the Google Drive image folder lister.
func ProvideDriveClient(i do.Injector) (*DriveClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.DriveIndexEnabled() {
		log.Info("Drive image indexing disabled by configuration")
		return &DriveClientHandle{Client: nil}, nil
	}

	client := drive.New(cfg.Drive.APIKey, log.Logger)
	log.Info("Drive image source configured", "folder_id", cfg.Drive.FolderID)

	return &DriveClientHandle{Client: client}, nil
}

// ProvideSheetPusher provides the Apps Script write-back mirror.
func ProvideSheetPusher(i do.Injector) (*sheetpush.Pusher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	pusher := sheetpush.New(cfg.Sheet.WebAppURL, log.Logger)
	if pusher.Enabled() {
		log.Info("Sheet write-back mirror configured")
	}

	return pusher, nil
}
