package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"eventhub/internal/models"
)

// ListEvents returns one page of visible (non-soft-deleted) events.
func (c *Client) ListEvents(ctx context.Context, page models.Page) ([]models.Event, error) {
	var events []models.Event
	if err := c.getJSON(ctx, "event.list", "/Event/GetAllEvents", pageQuery(page), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent returns a single event by id.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := c.getJSON(ctx, "event.get", "/Event/GetEventById/"+id, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsByCategory returns one page of events in the given category.
func (c *Client) ListEventsByCategory(ctx context.Context, categoryID string, page models.Page) ([]models.Event, error) {
	var events []models.Event
	if err := c.getJSON(ctx, "event.listByCategory", "/Event/GetEventsByCategory/"+categoryID, pageQuery(page), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// AddEvent creates an event from a multipart form and returns the stored record.
func (c *Client) AddEvent(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	body, contentType, err := eventForm(draft)
	if err != nil {
		return nil, &Error{Op: "event.add", Err: err}
	}

	var event models.Event
	if err := c.do(ctx, "event.add", http.MethodPost, "/Event/AddEvent", nil, body, contentType, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent replaces an event's fields. A nil draft.Image keeps the stored image.
func (c *Client) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error {
	body, contentType, err := eventForm(draft)
	if err != nil {
		return &Error{Op: "event.update", Err: err}
	}
	return c.do(ctx, "event.update", http.MethodPut, "/Event/UpdateEvent/"+id, nil, body, contentType, nil)
}

// DeleteEvent removes an event permanently.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.delete(ctx, "event.delete", "/Event/DeleteEvent/"+id)
}

// SoftDeleteEvent marks an event deleted; it drops out of listings but stays retrievable.
func (c *Client) SoftDeleteEvent(ctx context.Context, id string) error {
	return c.delete(ctx, "event.softDelete", "/Event/SoftDeleteEvent/"+id)
}

// eventForm encodes an event draft as the multipart form the backend expects.
func eventForm(draft models.EventDraft) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	fields := map[string]string{
		"Title":       draft.Title,
		"Description": draft.Description,
		"CategoryId":  draft.CategoryID,
		"EventDate":   draft.EventDate.UTC().Format(time.RFC3339),
		"Venue":       draft.Venue,
		"Price":       strconv.FormatFloat(draft.Price, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if draft.Image != nil {
		part, err := form.CreateFormFile("Image", draft.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(draft.Image.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}

	return buf, form.FormDataContentType(), nil
}
