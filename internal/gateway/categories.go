package gateway

import (
	"context"

	"eventhub/internal/models"
)

// ListCategories returns one page of visible categories.
func (c *Client) ListCategories(ctx context.Context, page models.Page) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getJSON(ctx, "category.list", "/Category/GetAllCategories", pageQuery(page), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a single category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := c.getJSON(ctx, "category.get", "/Category/GetCategoryById/"+id, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// AddCategory creates a category and returns the stored record.
func (c *Client) AddCategory(ctx context.Context, name string) (*models.Category, error) {
	req := models.CategoryRequest{Name: name}
	var category models.Category
	if err := c.postJSON(ctx, "category.add", "/Category/AddCategory", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id, name string) error {
	req := models.CategoryRequest{Name: name}
	return c.putJSON(ctx, "category.update", "/Category/UpdateCategory/"+id, req)
}

// DeleteCategory removes a category permanently.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "category.delete", "/Category/DeleteCategory/"+id)
}

// SoftDeleteCategory marks a category deleted.
func (c *Client) SoftDeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "category.softDelete", "/Category/SoftDeleteCategory/"+id)
}
