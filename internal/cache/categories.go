package cache

import (
	"context"

	"eventhub/internal/models"
)

// Category mutations patch the mirror directly instead of re-fetching.
// Local edits are applied tentatively, then kept once the backend confirms
// or rolled back to the pre-mutation snapshot on error.

func (c *Cache) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := c.backend.AddCategory(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if !c.closed {
		c.categories = append(c.categories, *category)
	}
	c.mu.Unlock()
	return category, nil
}

func (c *Cache) UpdateCategory(ctx context.Context, id, name string) error {
	rollback := c.stageCategories(func(categories []models.Category) []models.Category {
		for i := range categories {
			if categories[i].ID == id {
				categories[i].Name = name
			}
		}
		return categories
	})

	if err := c.backend.UpdateCategory(ctx, id, name); err != nil {
		rollback()
		return err
	}
	return nil
}

func (c *Cache) DeleteCategory(ctx context.Context, id string) error {
	rollback := c.stageCategories(func(categories []models.Category) []models.Category {
		return dropCategory(categories, id)
	})

	if err := c.backend.DeleteCategory(ctx, id); err != nil {
		rollback()
		return err
	}
	return nil
}

func (c *Cache) SoftDeleteCategory(ctx context.Context, id string) error {
	rollback := c.stageCategories(func(categories []models.Category) []models.Category {
		return dropCategory(categories, id)
	})

	if err := c.backend.SoftDeleteCategory(ctx, id); err != nil {
		rollback()
		return err
	}
	return nil
}

// stageCategories applies a tentative edit to the category mirror and
// returns the rollback restoring the pre-edit snapshot.
func (c *Cache) stageCategories(mutate func([]models.Category) []models.Category) func() {
	c.mu.Lock()
	snapshot := append([]models.Category{}, c.categories...)
	if !c.closed {
		c.categories = mutate(append([]models.Category{}, c.categories...))
	}
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		if !c.closed {
			c.categories = snapshot
		}
		c.mu.Unlock()
	}
}

func dropCategory(categories []models.Category, id string) []models.Category {
	kept := categories[:0]
	for _, category := range categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	return kept
}
