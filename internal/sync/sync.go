// Package sync refreshes the cached catalog from its Google sources on
// an interval: spreadsheet tabs for structured data, a Drive folder
// tree for product images.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/drive"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/sheets"
	"github.com/storefrontapp/storefront-server/internal/store"
)

// SheetSource is the slice of the sheets client the worker uses.
type SheetSource interface {
	QueryRows(ctx context.Context, gid string) ([]sheets.Row, error)
	CSVRows(ctx context.Context, gid string) ([]sheets.Row, error)
	FacebookLinks(ctx context.Context, gid string) ([]string, error)
}

// ImageSource lists the image files under a Drive folder tree.
type ImageSource interface {
	ListImages(ctx context.Context, folderID string) ([]drive.File, error)
}

// Indexer rebuilds the product search index after a pass that changed
// products.
type Indexer interface {
	RebuildFromStore(ctx context.Context) error
}

// Worker runs catalog refresh passes. A pass is best-effort: every tab
// fails independently, and a failed pass leaves the previous cache in
// place.
type Worker struct {
	cfg     *config.Config
	sheet   SheetSource
	images  ImageSource
	store   *store.Store
	indexer Indexer
	logger  *slog.Logger

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	fbOnce sync.Once
}

// New creates a sync worker. images and indexer may be nil when Drive
// indexing or search are not configured.
func New(cfg *config.Config, sheet SheetSource, images ImageSource, indexer Indexer, st *store.Store, logger *slog.Logger) *Worker {
	return &Worker{
		cfg:     cfg,
		sheet:   sheet,
		images:  images,
		store:   st,
		indexer: indexer,
		logger:  logger,
	}
}

// Start launches the refresh loop: one pass immediately, then one per
// configured interval. It is a no-op when no sheet is configured.
func (w *Worker) Start() {
	if !w.cfg.SheetSyncEnabled() {
		w.logger.Info("catalog sync disabled, no sheet configured")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)

		w.RunOnce(ctx)

		ticker := time.NewTicker(w.cfg.Sync.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
}

// Shutdown stops the refresh loop and waits for an in-flight pass to
// finish.
func (w *Worker) Shutdown() error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	<-w.done
	return nil
}

// RunOnce executes a single refresh pass. Concurrent calls serialize;
// the admin sync trigger shares this path with the ticker.
func (w *Worker) RunOnce(ctx context.Context) {
	if !w.cfg.SheetSyncEnabled() {
		w.logger.Info("catalog sync skipped, no sheet configured")
		return
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()

	start := time.Now()
	w.logger.Info("catalog sync pass starting")

	w.fbOnce.Do(func() { w.syncFacebook(ctx) })

	baselines := w.readBaselines(ctx)

	// Products and the Drive image tree are independent fetches.
	var (
		productRows []sheets.Row
		productsErr error
		imageIndex  *drive.ImageIndex
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		productRows, productsErr = w.sheet.QueryRows(gctx, w.cfg.Sheet.ProductsGID)
		return nil
	})
	if w.images != nil && w.cfg.DriveIndexEnabled() {
		g.Go(func() error {
			files, err := w.images.ListImages(gctx, w.cfg.Drive.FolderID)
			if err != nil {
				w.logger.Warn("drive listing failed, keeping sheet images only", "error", err)
				return nil
			}
			imageIndex = drive.BuildIndex(files)
			w.logger.Debug("drive image index built", "files", len(files), "keys", imageIndex.Len())
			return nil
		})
	}
	_ = g.Wait()

	// The product-list commit always precedes the optional-tab
	// commits, so the categories tab stays authoritative over keys
	// derived from products in the same pass.
	productsChanged := false
	if productsErr != nil {
		w.logger.Error("products tab fetch failed, keeping cached products", "error", productsErr)
	} else {
		productsChanged = w.syncProducts(ctx, productRows, imageIndex, baselines)
	}

	w.syncOptionalTabs(ctx, baselines)

	if productsChanged && w.indexer != nil {
		if err := w.indexer.RebuildFromStore(ctx); err != nil {
			w.logger.Error("search index rebuild failed", "error", err)
		}
	}

	w.logger.Info("catalog sync pass finished", "duration", time.Since(start).Round(time.Millisecond))
}

func (w *Worker) readBaselines(ctx context.Context) map[store.Collection]uint64 {
	baselines := make(map[store.Collection]uint64)
	for _, c := range []store.Collection{
		store.CollectionProducts,
		store.CollectionCategories,
		store.CollectionTags,
		store.CollectionMenu,
		store.CollectionPages,
		store.CollectionTypes,
		store.CollectionLevels,
	} {
		v, err := w.store.Version(ctx, c)
		if err != nil {
			w.logger.Warn("baseline read failed", "collection", c, "error", err)
			continue
		}
		baselines[c] = v
	}
	return baselines
}

// syncProducts replaces the cached products and appends any category
// keys they reference that the category list does not know yet. Reports
// whether the product collection changed.
func (w *Worker) syncProducts(ctx context.Context, rows []sheets.Row, imageIndex *drive.ImageIndex, baselines map[store.Collection]uint64) bool {
	var lookup sheets.ImageLookup
	if imageIndex != nil {
		lookup = imageIndex
	}
	products := sheets.MapProducts(rows, lookup, w.cfg.Sheet.ImageBase)
	if len(products) == 0 {
		w.logger.Warn("products tab empty, keeping cached products")
		return false
	}

	if _, err := store.ReplaceIfBaseline(ctx, w.store, store.CollectionProducts, products, baselines[store.CollectionProducts]); err != nil {
		if errors.Is(err, store.ErrConflict) {
			w.logger.Warn("products changed since pass start, skipping replace")
		} else {
			w.logger.Error("products replace failed", "error", err)
		}
		return false
	}
	w.logger.Info("products replaced", "count", len(products))

	w.deriveCategories(ctx, products, baselines)
	return true
}

// deriveCategories appends categories referenced by products but absent
// from the category list, with the key standing in as title. Existing
// entries are never removed or retitled; the authoritative categories
// tab, committing later in the pass, may overwrite.
func (w *Worker) deriveCategories(ctx context.Context, products []domain.Product, baselines map[store.Collection]uint64) {
	categories, baseline, err := store.Get[domain.Category](ctx, w.store, store.CollectionCategories)
	if err != nil {
		w.logger.Warn("category read failed, skipping derivation", "error", err)
		return
	}

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Key] = true
	}

	added := 0
	for _, p := range products {
		if p.Category == "" || known[p.Category] {
			continue
		}
		known[p.Category] = true
		categories = append(categories, domain.Category{Key: p.Category, Title: p.Category})
		added++
	}
	if added == 0 {
		return
	}

	next, err := store.ReplaceIfBaseline(ctx, w.store, store.CollectionCategories, categories, baseline)
	if err != nil {
		w.logger.Warn("derived category append failed", "error", err)
		return
	}
	// The categories tab commits after this; move its baseline forward
	// so the append does not read as a conflicting edit.
	baselines[store.CollectionCategories] = next
	w.logger.Info("derived categories appended", "count", added)
}

// syncOptionalTabs fetches each configured secondary tab concurrently
// over the CSV transport. A tab only overwrites its collection when the
// mapped result is non-empty.
func (w *Worker) syncOptionalTabs(ctx context.Context, baselines map[store.Collection]uint64) {
	type tab struct {
		gid        string
		collection store.Collection
		replace    func(rows []sheets.Row) (int, error)
	}

	tabs := []tab{
		{w.cfg.Sheet.CategoriesGID, store.CollectionCategories, replaceMapped(ctx, w, store.CollectionCategories, sheets.MapCategories, baselines)},
		{w.cfg.Sheet.TagsGID, store.CollectionTags, replaceMapped(ctx, w, store.CollectionTags, sheets.MapTags, baselines)},
		{w.cfg.Sheet.MenuGID, store.CollectionMenu, replaceMapped(ctx, w, store.CollectionMenu, sheets.MapMenu, baselines)},
		{w.cfg.Sheet.PagesGID, store.CollectionPages, replaceMapped(ctx, w, store.CollectionPages, sheets.MapPages, baselines)},
		{w.cfg.Sheet.TypesGID, store.CollectionTypes, replaceMapped(ctx, w, store.CollectionTypes, sheets.MapTypes, baselines)},
		{w.cfg.Sheet.LevelsGID, store.CollectionLevels, replaceMapped(ctx, w, store.CollectionLevels, sheets.MapLevels, baselines)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tabs {
		if t.gid == "" {
			continue
		}
		g.Go(func() error {
			rows, err := w.sheet.CSVRows(gctx, t.gid)
			if err != nil {
				w.logger.Warn("tab fetch failed, keeping cached data", "collection", t.collection, "error", err)
				return nil
			}
			n, err := t.replace(rows)
			if err != nil {
				if errors.Is(err, store.ErrConflict) {
					w.logger.Warn("collection changed since pass start, skipping replace", "collection", t.collection)
				} else {
					w.logger.Error("tab replace failed", "collection", t.collection, "error", err)
				}
				return nil
			}
			if n > 0 {
				w.logger.Info("collection replaced", "collection", t.collection, "count", n)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// replaceMapped binds a tab mapper to a baseline-checked replace. An
// empty mapped result is a no-op so a blank or broken tab cannot wipe
// the collection.
func replaceMapped[T any](ctx context.Context, w *Worker, c store.Collection, mapRows func([]sheets.Row) []T, baselines map[store.Collection]uint64) func([]sheets.Row) (int, error) {
	return func(rows []sheets.Row) (int, error) {
		items := mapRows(rows)
		if len(items) == 0 {
			return 0, nil
		}
		if _, err := store.ReplaceIfBaseline(ctx, w.store, c, items, baselines[c]); err != nil {
			return 0, err
		}
		return len(items), nil
	}
}

// syncFacebook loads the Facebook post links tab. The links change
// rarely, so one fetch at startup is enough; failures are logged and
// the next process start retries.
func (w *Worker) syncFacebook(ctx context.Context) {
	if w.cfg.Sheet.FacebookGID == "" {
		return
	}
	links, err := w.sheet.FacebookLinks(ctx, w.cfg.Sheet.FacebookGID)
	if err != nil {
		w.logger.Warn("facebook links fetch failed", "error", err)
		return
	}
	if len(links) == 0 {
		return
	}
	if _, err := store.Replace(ctx, w.store, store.CollectionFacebook, links); err != nil {
		w.logger.Error("facebook links replace failed", "error", err)
		return
	}
	w.logger.Info("facebook links replaced", "count", len(links))
}
