package gateway

import (
	"context"
	"errors"
	"net/http"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"
)

// ListBookings returns one page of all bookings (admin view).
func (c *Client) ListBookings(ctx context.Context, page models.Page) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "booking.list", "/Booking/GetAllBookings", pageQuery(page), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UserBookings returns the authenticated user's bookings.
func (c *Client) UserBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.getJSON(ctx, "booking.listUser", "/Booking/GetUserBookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// AddBooking books an event for the authenticated user. The backend signals
// a duplicate (user, event) pair with 400, which surfaces as ErrAlreadyBooked.
func (c *Client) AddBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	var booking models.Booking
	if err := c.postJSON(ctx, "booking.add", "/Booking/AddBooking", req, &booking); err != nil {
		var gwErr *Error
		if errors.As(err, &gwErr) && (gwErr.Status == http.StatusBadRequest || gwErr.Status == http.StatusConflict) {
			return nil, &Error{Op: gwErr.Op, Status: gwErr.Status, Message: gwErr.Message, Err: apperrors.ErrAlreadyBooked}
		}
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking removes a booking permanently.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.delete(ctx, "booking.delete", "/Booking/DeleteBooking/"+id)
}

// SoftDeleteBooking cancels a booking, keeping the record.
func (c *Client) SoftDeleteBooking(ctx context.Context, id string) error {
	return c.delete(ctx, "booking.softDelete", "/Booking/SoftDeleteBooking/"+id)
}
