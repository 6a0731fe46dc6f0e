package admin

import (
	"context"
	"fmt"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"
)

// Role required for catalog mutations.
const Role = "Admin"

// IsAdmin reports whether the session carries the administrator role.
func IsAdmin(session *models.Session) bool {
	return session != nil && session.User.HasRole(Role)
}

// Sessions exposes the current identity; satisfied by the session store.
type Sessions interface {
	Current() *models.Session
}

// Catalog is the mutation surface the gate protects; satisfied by the cache.
type Catalog interface {
	AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error
	DeleteEvent(ctx context.Context, id string) error
	SoftDeleteEvent(ctx context.Context, id string) error

	AddCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
	SoftDeleteCategory(ctx context.Context, id string) error
}

// Gate rejects admin mutations before they reach the backend when the
// current session lacks the administrator role. Client-side convenience
// only: the backend re-checks authorization on every call.
type Gate struct {
	sessions Sessions
	catalog  Catalog
}

func NewGate(sessions Sessions, catalog Catalog) *Gate {
	return &Gate{sessions: sessions, catalog: catalog}
}

// IsAdmin reports whether the current session may mutate the catalog.
func (g *Gate) IsAdmin() bool {
	return IsAdmin(g.sessions.Current())
}

func (g *Gate) guard(op string) error {
	if !g.IsAdmin() {
		return fmt.Errorf("%s: %w", op, apperrors.ErrUnauthorized)
	}
	return nil
}

func (g *Gate) AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	if err := g.guard("add event"); err != nil {
		return nil, err
	}
	return g.catalog.AddEvent(ctx, draft)
}

func (g *Gate) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error {
	if err := g.guard("update event"); err != nil {
		return err
	}
	return g.catalog.UpdateEvent(ctx, id, draft)
}

func (g *Gate) DeleteEvent(ctx context.Context, id string) error {
	if err := g.guard("delete event"); err != nil {
		return err
	}
	return g.catalog.DeleteEvent(ctx, id)
}

func (g *Gate) SoftDeleteEvent(ctx context.Context, id string) error {
	if err := g.guard("soft delete event"); err != nil {
		return err
	}
	return g.catalog.SoftDeleteEvent(ctx, id)
}

func (g *Gate) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	if err := g.guard("add category"); err != nil {
		return nil, err
	}
	return g.catalog.AddCategory(ctx, name)
}

func (g *Gate) UpdateCategory(ctx context.Context, id, name string) error {
	if err := g.guard("update category"); err != nil {
		return err
	}
	return g.catalog.UpdateCategory(ctx, id, name)
}

func (g *Gate) DeleteCategory(ctx context.Context, id string) error {
	if err := g.guard("delete category"); err != nil {
		return err
	}
	return g.catalog.DeleteCategory(ctx, id)
}

func (g *Gate) SoftDeleteCategory(ctx context.Context, id string) error {
	if err := g.guard("soft delete category"); err != nil {
		return err
	}
	return g.catalog.SoftDeleteCategory(ctx, id)
}
