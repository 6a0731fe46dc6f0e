package cache

import (
	"context"
	"log/slog"
	"sync"

	"eventhub/internal/logger"
	"eventhub/internal/metrics"
	"eventhub/internal/models"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Backend is the catalog surface of a backend strategy.
type Backend interface {
	ListEvents(ctx context.Context, page models.Page) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error
	DeleteEvent(ctx context.Context, id string) error
	SoftDeleteEvent(ctx context.Context, id string) error

	ListCategories(ctx context.Context, page models.Page) ([]models.Category, error)
	AddCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
	SoftDeleteCategory(ctx context.Context, id string) error
}

// Cache mirrors the server-side event and category collections. Reads are
// served from memory; mutations go through the backend and either re-refresh
// or patch the mirror. A failed refresh keeps the previous (stale) data.
type Cache struct {
	backend Backend
	page    models.Page
	log     *slog.Logger

	// Concurrent Refresh calls coalesce into one underlying fetch.
	group singleflight.Group

	mu         sync.RWMutex
	events     []models.Event
	categories []models.Category
	loading    bool
	lastErr    error
	closed     bool
}

func New(backend Backend, page models.Page) *Cache {
	return &Cache{
		backend: backend,
		page:    page.Normalize(),
		log:     logger.WithComponent("cache"),
	}
}

// Events returns the mirrored event collection.
func (c *Cache) Events() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Event{}, c.events...)
}

// Categories returns the mirrored category collection.
func (c *Cache) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Category{}, c.categories...)
}

// Loading reports whether a refresh is in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the error of the last failed refresh, nil after a successful one.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Close marks the cache disposed. Late refresh completions are discarded.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Refresh fetches events and categories concurrently and swaps both mirrors
// atomically, or neither. Concurrent calls share one underlying fetch.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	return err
}

func (c *Cache) refresh(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	var events []models.Event
	var categories []models.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = c.backend.ListEvents(gctx, c.page)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = c.backend.ListCategories(gctx, c.page)
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.ObserveCacheRefresh("error")
		c.mu.Lock()
		if !c.closed {
			c.lastErr = err
		}
		c.mu.Unlock()
		c.log.Error("refresh failed, keeping stale data", "error", err)
		return err
	}

	metrics.ObserveCacheRefresh("ok")
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// Owner is gone; never write to disposed state.
		return nil
	}
	c.events = events
	c.categories = categories
	c.lastErr = nil
	return nil
}

func (c *Cache) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

// GetEvent bypasses the mirror for a fresh single-event read.
func (c *Cache) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return c.backend.GetEvent(ctx, id)
}

// Event mutations re-run Refresh after the backend confirms, so listings
// reflect server-side filtering (soft-deleted rows drop out).

func (c *Cache) AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	event, err := c.backend.AddEvent(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx); err != nil {
		return event, err
	}
	return event, nil
}

func (c *Cache) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error {
	if err := c.backend.UpdateEvent(ctx, id, draft); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Cache) DeleteEvent(ctx context.Context, id string) error {
	if err := c.backend.DeleteEvent(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Cache) SoftDeleteEvent(ctx context.Context, id string) error {
	if err := c.backend.SoftDeleteEvent(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}
