package service

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storefrontapp/storefront-server/internal/auth"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/errors"
	"github.com/storefrontapp/storefront-server/internal/id"
	"github.com/storefrontapp/storefront-server/internal/normalize"
	"github.com/storefrontapp/storefront-server/internal/sheetpush"
	"github.com/storefrontapp/storefront-server/internal/store"
	"github.com/storefrontapp/storefront-server/internal/store/sqlite"
)

// Indexer rebuilds the product search index after an admin write.
type Indexer interface {
	RebuildFromStore(ctx context.Context) error
}

// AdminService applies back-office mutations to the cached catalog.
// Every mutation is audit-logged and mirrored to the sheet endpoint
// when one is configured.
type AdminService struct {
	store   *store.Store
	users   *sqlite.Store
	pusher  *sheetpush.Pusher
	indexer Indexer
	logger  *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(st *store.Store, users *sqlite.Store, pusher *sheetpush.Pusher, indexer Indexer, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:   st,
		users:   users,
		pusher:  pusher,
		indexer: indexer,
		logger:  logger,
	}
}

// upsertItem inserts or replaces one item in a cached collection,
// matching on the key function. Returns whether the item existed.
func upsertItem[T any](ctx context.Context, s *AdminService, c store.Collection, item T, keyOf func(T) string) (bool, error) {
	items, _, err := store.Get[T](ctx, s.store, c)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", c, err)
	}

	found := false
	for i := range items {
		if keyOf(items[i]) == keyOf(item) {
			items[i] = item
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	if _, err := store.Replace(ctx, s.store, c, items); err != nil {
		return false, fmt.Errorf("replace %s: %w", c, err)
	}
	return found, nil
}

// deleteItem removes one item from a cached collection by key.
func deleteItem[T any](ctx context.Context, s *AdminService, c store.Collection, key string, keyOf func(T) string) error {
	items, _, err := store.Get[T](ctx, s.store, c)
	if err != nil {
		return fmt.Errorf("load %s: %w", c, err)
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if keyOf(item) != key {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return errors.NotFoundf("%s %s not found", c, key)
	}

	if _, err := store.Replace(ctx, s.store, c, kept); err != nil {
		return fmt.Errorf("replace %s: %w", c, err)
	}
	return nil
}

// record appends an audit entry and mirrors the mutation to the sheet.
func (s *AdminService) record(ctx context.Context, actor *auth.AccessClaims, op string, c store.Collection, itemID string, item any) {
	s.audit(ctx, actor, string(c)+"."+op, item)
	s.pusher.Push(opToPush(op), string(c), itemID, item)
	s.logger.Info("admin mutation", "event", string(c)+"."+op, "id", itemID, "actor", actor.Username)
}

// audit appends one audit entry. Failures are logged, never surfaced;
// the mutation itself has already committed.
func (s *AdminService) audit(ctx context.Context, actor *auth.AccessClaims, event string, payload any) {
	var encoded string
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			encoded = string(data)
		}
	}
	entry := &domain.AuditEntry{
		ID:      id.MustGenerate("aud"),
		At:      time.Now().UTC(),
		Actor:   actor.Username,
		Event:   event,
		Payload: encoded,
	}
	if err := s.users.AppendAudit(ctx, entry); err != nil {
		s.logger.Error("audit append failed", "event", event, "error", err)
	}
}

func opToPush(op string) string {
	switch op {
	case "create":
		return sheetpush.OpInsert
	case "delete":
		return sheetpush.OpDelete
	default:
		return sheetpush.OpUpdate
	}
}

func mutationOp(existed bool) string {
	if existed {
		return "update"
	}
	return "create"
}

// SaveProduct inserts or updates a product. A product changing to a
// size type that no longer allows some of its per-size prices has
// those entries pruned, and the pruning itself is audited.
func (s *AdminService) SaveProduct(ctx context.Context, actor *auth.AccessClaims, p *domain.Product) (*domain.Product, error) {
	if p.Name == "" {
		return nil, errors.Validation("product name is required")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	previous, _ := s.findProduct(ctx, p.ID)
	if previous != nil && previous.TypeID != p.TypeID && len(p.PriceBySize) > 0 {
		pruned := s.pruneSizePrices(ctx, p)
		if pruned > 0 {
			s.audit(ctx, actor, "products.prune_sizes",
				map[string]any{"id": p.ID, "typeId": p.TypeID, "pruned": pruned})
		}
	}

	existed, err := upsertItem(ctx, s, store.CollectionProducts, p, func(p *domain.Product) string { return p.ID })
	if err != nil {
		return nil, err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionProducts, p.ID, p)
	s.rebuildIndex(ctx)
	return p, nil
}

// DeleteProduct removes a product by ID.
func (s *AdminService) DeleteProduct(ctx context.Context, actor *auth.AccessClaims, productID string) error {
	err := deleteItem(ctx, s, store.CollectionProducts, productID, func(p *domain.Product) string { return p.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionProducts, productID, nil)
	s.rebuildIndex(ctx)
	return nil
}

func (s *AdminService) findProduct(ctx context.Context, productID string) (*domain.Product, error) {
	products, _, err := store.Get[*domain.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == productID {
			return p, nil
		}
	}
	return nil, errors.NotFoundf("product %s not found", productID)
}

// pruneSizePrices drops PriceBySize entries whose size key the
// product's new type does not offer. Returns how many were dropped.
func (s *AdminService) pruneSizePrices(ctx context.Context, p *domain.Product) int {
	types, _, err := store.Get[domain.SizeType](ctx, s.store, store.CollectionTypes)
	if err != nil {
		s.logger.Warn("size type load failed, keeping per-size prices", "error", err)
		return 0
	}
	var sizeType *domain.SizeType
	for i := range types {
		if types[i].ID == p.TypeID {
			sizeType = &types[i]
			break
		}
	}
	if sizeType == nil {
		return 0
	}

	allowed := make(map[string]bool, len(sizeType.Sizes))
	for _, opt := range sizeType.Sizes {
		allowed[opt.Key] = true
	}

	pruned := 0
	for key := range p.PriceBySize {
		if !allowed[key] {
			delete(p.PriceBySize, key)
			pruned++
		}
	}
	return pruned
}

func (s *AdminService) rebuildIndex(ctx context.Context) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.RebuildFromStore(ctx); err != nil {
		s.logger.Error("search index rebuild failed", "error", err)
	}
}

// SaveCategory inserts or updates a category.
func (s *AdminService) SaveCategory(ctx context.Context, actor *auth.AccessClaims, c domain.Category) error {
	if c.Key == "" {
		return errors.Validation("category key is required")
	}
	if c.Title == "" {
		c.Title = c.Key
	}
	existed, err := upsertItem(ctx, s, store.CollectionCategories, c, func(c domain.Category) string { return c.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionCategories, c.Key, c)
	return nil
}

// DeleteCategory removes a category by key.
func (s *AdminService) DeleteCategory(ctx context.Context, actor *auth.AccessClaims, key string) error {
	err := deleteItem(ctx, s, store.CollectionCategories, key, func(c domain.Category) string { return c.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionCategories, key, nil)
	return nil
}

// SaveMenuItem inserts or updates a navigation row.
func (s *AdminService) SaveMenuItem(ctx context.Context, actor *auth.AccessClaims, m domain.MenuItem) error {
	if m.Key == "" {
		return errors.Validation("menu key is required")
	}
	existed, err := upsertItem(ctx, s, store.CollectionMenu, m, func(m domain.MenuItem) string { return m.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionMenu, m.Key, m)
	return nil
}

// DeleteMenuItem removes a navigation row by key.
func (s *AdminService) DeleteMenuItem(ctx context.Context, actor *auth.AccessClaims, key string) error {
	err := deleteItem(ctx, s, store.CollectionMenu, key, func(m domain.MenuItem) string { return m.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionMenu, key, nil)
	return nil
}

// SavePage inserts or updates a static page.
func (s *AdminService) SavePage(ctx context.Context, actor *auth.AccessClaims, p domain.Page) error {
	if p.Key == "" {
		return errors.Validation("page key is required")
	}
	existed, err := upsertItem(ctx, s, store.CollectionPages, p, func(p domain.Page) string { return p.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionPages, p.Key, p)
	return nil
}

// DeletePage removes a static page by key.
func (s *AdminService) DeletePage(ctx context.Context, actor *auth.AccessClaims, key string) error {
	err := deleteItem(ctx, s, store.CollectionPages, key, func(p domain.Page) string { return p.Key })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionPages, key, nil)
	return nil
}

// SaveTag inserts or updates a tag.
func (s *AdminService) SaveTag(ctx context.Context, actor *auth.AccessClaims, t domain.Tag) error {
	if t.Label == "" {
		return errors.Validation("tag label is required")
	}
	if t.ID == "" {
		t.ID = normalize.Slug(t.Label)
	}
	existed, err := upsertItem(ctx, s, store.CollectionTags, t, func(t domain.Tag) string { return t.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionTags, t.ID, t)
	return nil
}

// DeleteTag removes a tag by ID.
func (s *AdminService) DeleteTag(ctx context.Context, actor *auth.AccessClaims, tagID string) error {
	err := deleteItem(ctx, s, store.CollectionTags, tagID, func(t domain.Tag) string { return t.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionTags, tagID, nil)
	return nil
}

// SaveType inserts or updates a size type.
func (s *AdminService) SaveType(ctx context.Context, actor *auth.AccessClaims, t domain.SizeType) error {
	if t.ID == "" {
		return errors.Validation("size type id is required")
	}
	existed, err := upsertItem(ctx, s, store.CollectionTypes, t, func(t domain.SizeType) string { return t.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionTypes, t.ID, t)
	return nil
}

// DeleteType removes a size type by ID.
func (s *AdminService) DeleteType(ctx context.Context, actor *auth.AccessClaims, typeID string) error {
	err := deleteItem(ctx, s, store.CollectionTypes, typeID, func(t domain.SizeType) string { return t.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionTypes, typeID, nil)
	return nil
}

// SaveLevel inserts or updates a price level.
func (s *AdminService) SaveLevel(ctx context.Context, actor *auth.AccessClaims, l domain.PriceLevel) error {
	if l.ID == "" {
		return errors.Validation("price level id is required")
	}
	existed, err := upsertItem(ctx, s, store.CollectionLevels, l, func(l domain.PriceLevel) string { return l.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, mutationOp(existed), store.CollectionLevels, l.ID, l)
	return nil
}

// DeleteLevel removes a price level by ID.
func (s *AdminService) DeleteLevel(ctx context.Context, actor *auth.AccessClaims, levelID string) error {
	err := deleteItem(ctx, s, store.CollectionLevels, levelID, func(l domain.PriceLevel) string { return l.ID })
	if err != nil {
		return err
	}
	s.record(ctx, actor, "delete", store.CollectionLevels, levelID, nil)
	return nil
}

// Audit returns the newest audit entries.
func (s *AdminService) Audit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	return s.users.ListAudit(ctx, limit)
}
