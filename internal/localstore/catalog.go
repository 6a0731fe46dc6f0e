package localstore

import (
	"context"
	"fmt"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/google/uuid"
)

// Event operations. Listings exclude soft-deleted rows and carry the
// category name denormalized, the way the remote backend responds.

func (s *Store) ListEvents(ctx context.Context, page models.Page) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.IsDeleted {
			continue
		}
		e.CategoryName = categoryName(categories, e.CategoryID)
		visible = append(visible, e)
	}
	return paginate(visible, page), nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range events {
		if e.ID == id {
			e.CategoryName = categoryName(categories, e.CategoryID)
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %s: %w", id, apperrors.ErrNotFound)
}

func (s *Store) ListEventsByCategory(ctx context.Context, categoryID string, page models.Page) ([]models.Event, error) {
	events, err := s.ListEvents(ctx, models.Page{Number: 1, Size: 1 << 20})
	if err != nil {
		return nil, err
	}

	matched := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.CategoryID == categoryID {
			matched = append(matched, e)
		}
	}
	return paginate(matched, page), nil
}

func (s *Store) AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categoryName(categories, draft.CategoryID) == "" {
		return nil, fmt.Errorf("category %s: %w", draft.CategoryID, apperrors.ErrValidation)
	}

	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		ID:           uuid.New().String(),
		Title:        draft.Title,
		Description:  draft.Description,
		CategoryID:   draft.CategoryID,
		CategoryName: categoryName(categories, draft.CategoryID),
		EventDate:    draft.EventDate,
		CreatedAt:    time.Now().UTC(),
		Venue:        draft.Venue,
		Price:        draft.Price,
	}
	if draft.Image != nil {
		event.ImageURL = "images/" + draft.Image.Filename
	}

	events = append(events, event)
	if err := s.storage.Set(ctx, slotEvents, events); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Store) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.loadEvents(ctx)
	if err != nil {
		return err
	}

	for i := range events {
		if events[i].ID != id {
			continue
		}
		events[i].Title = draft.Title
		events[i].Description = draft.Description
		events[i].CategoryID = draft.CategoryID
		events[i].EventDate = draft.EventDate
		events[i].Venue = draft.Venue
		events[i].Price = draft.Price
		if draft.Image != nil {
			events[i].ImageURL = "images/" + draft.Image.Filename
		}
		return s.storage.Set(ctx, slotEvents, events)
	}
	return fmt.Errorf("event %s: %w", id, apperrors.ErrNotFound)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.loadEvents(ctx)
	if err != nil {
		return err
	}

	kept := events[:0]
	found := false
	for _, e := range events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("event %s: %w", id, apperrors.ErrNotFound)
	}
	return s.storage.Set(ctx, slotEvents, kept)
}

func (s *Store) SoftDeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.loadEvents(ctx)
	if err != nil {
		return err
	}

	for i := range events {
		if events[i].ID == id {
			events[i].IsDeleted = true
			return s.storage.Set(ctx, slotEvents, events)
		}
	}
	return fmt.Errorf("event %s: %w", id, apperrors.ErrNotFound)
}

// Category operations

func (s *Store) ListCategories(ctx context.Context, page models.Page) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsDeleted {
			visible = append(visible, c)
		}
	}
	return paginate(visible, page), nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
}

func (s *Store) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	req := models.CategoryRequest{Name: name}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	categories = append(categories, category)
	if err := s.storage.Set(ctx, slotCategories, categories); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id, name string) error {
	req := models.CategoryRequest{Name: name}
	if err := req.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories[i].Name = name
			return s.storage.Set(ctx, slotCategories, categories)
		}
	}
	return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	kept := categories[:0]
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
	}
	return s.storage.Set(ctx, slotCategories, kept)
}

func (s *Store) SoftDeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories[i].IsDeleted = true
			return s.storage.Set(ctx, slotCategories, categories)
		}
	}
	return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
}

// SeedCatalog replaces the event and category collections with fixtures.
func (s *Store) SeedCatalog(ctx context.Context, categories []models.Category, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, slotCategories, categories); err != nil {
		return err
	}
	return s.storage.Set(ctx, slotEvents, events)
}

func categoryName(categories []models.Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}
