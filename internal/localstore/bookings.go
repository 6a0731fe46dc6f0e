package localstore

import (
	"context"
	"fmt"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/google/uuid"
)

type storedBooking struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	EventID     string    `json:"eventId"`
	BookingDate time.Time `json:"bookingDate"`
	IsDeleted   bool      `json:"isDeleted"`
}

// view denormalizes the referenced event for listing responses.
func (b storedBooking) view(events []models.Event) models.Booking {
	booking := models.Booking{
		ID:          b.ID,
		EventID:     b.EventID,
		BookingDate: b.BookingDate,
		IsDeleted:   b.IsDeleted,
	}
	for _, e := range events {
		if e.ID == b.EventID {
			booking.EventTitle = e.Title
			booking.EventDate = e.EventDate
			booking.EventVenue = e.Venue
			break
		}
	}
	return booking
}

// ListBookings returns every active booking (admin view).
func (s *Store) ListBookings(ctx context.Context, page models.Page) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsDeleted {
			visible = append(visible, b.view(events))
		}
	}
	return paginate(visible, page), nil
}

// UserBookings returns the calling user's active bookings.
func (s *Store) UserBookings(ctx context.Context) ([]models.Booking, error) {
	return s.UserBookingsByToken(ctx, s.callerToken(ctx))
}

// UserBookingsByToken returns active bookings of the token's user.
func (s *Store) UserBookingsByToken(ctx context.Context, token string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.UserID == user.ID && !b.IsDeleted {
			mine = append(mine, b.view(events))
		}
	}
	return mine, nil
}

// AddBooking books an event for the calling user. At most one active booking
// per (user, event) pair.
func (s *Store) AddBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	return s.AddBookingByToken(ctx, s.callerToken(ctx), req)
}

// AddBookingByToken books an event for the token's user.
func (s *Store) AddBookingByToken(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.userByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	events, err := s.loadEvents(ctx)
	if err != nil {
		return nil, err
	}
	exists := false
	for _, e := range events {
		if e.ID == req.EventID && !e.IsDeleted {
			exists = true
			break
		}
	}
	if !exists {
		return nil, fmt.Errorf("event %s: %w", req.EventID, apperrors.ErrNotFound)
	}

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.UserID == user.ID && b.EventID == req.EventID && !b.IsDeleted {
			return nil, fmt.Errorf("event %s: %w", req.EventID, apperrors.ErrAlreadyBooked)
		}
	}

	when := req.BookingDate
	if when.IsZero() {
		when = time.Now().UTC()
	}
	booking := storedBooking{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		EventID:     req.EventID,
		BookingDate: when,
	}
	bookings = append(bookings, booking)

	if err := s.storage.Set(ctx, slotBookings, bookings); err != nil {
		return nil, err
	}
	result := booking.view(events)
	return &result, nil
}

// DeleteBooking removes a booking permanently.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return err
	}

	kept := bookings[:0]
	found := false
	for _, b := range bookings {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
	}
	return s.storage.Set(ctx, slotBookings, kept)
}

// SoftDeleteBooking cancels a booking, keeping the record.
func (s *Store) SoftDeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.loadBookings(ctx)
	if err != nil {
		return err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			bookings[i].IsDeleted = true
			return s.storage.Set(ctx, slotBookings, bookings)
		}
	}
	return fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
}
