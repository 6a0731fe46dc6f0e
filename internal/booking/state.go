package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

// Backend is the booking surface of a backend strategy.
type Backend interface {
	UserBookings(ctx context.Context) ([]models.Booking, error)
	AddBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	SoftDeleteBooking(ctx context.Context, id string) error
}

// Sessions exposes the current identity; satisfied by the session store.
type Sessions interface {
	Current() *models.Session
}

// State answers "is this event booked by the current user" from a booking
// set kept in sync with the backend. The same shape serves both strategies:
// the local store derives the set from persisted bookings, the gateway from
// a server query.
type State struct {
	backend  Backend
	sessions Sessions
	log      *slog.Logger

	mu     sync.RWMutex
	booked map[string]models.Booking // event id -> booking
}

func New(backend Backend, sessions Sessions) *State {
	return &State{
		backend:  backend,
		sessions: sessions,
		log:      logger.WithComponent("booking"),
		booked:   map[string]models.Booking{},
	}
}

// Load fetches the current user's bookings and rebuilds the set.
func (s *State) Load(ctx context.Context) error {
	if s.sessions.Current() == nil {
		return fmt.Errorf("load bookings: %w", apperrors.ErrUnauthenticated)
	}

	bookings, err := s.backend.UserBookings(ctx)
	if err != nil {
		return err
	}

	booked := make(map[string]models.Booking, len(bookings))
	for _, b := range bookings {
		booked[b.EventID] = b
	}

	s.mu.Lock()
	s.booked = booked
	s.mu.Unlock()
	return nil
}

// BookEvent books the event for the current user. Requires an active session
// and fails with ErrAlreadyBooked on a duplicate.
func (s *State) BookEvent(ctx context.Context, eventID string) error {
	if s.sessions.Current() == nil {
		return fmt.Errorf("book event %s: %w", eventID, apperrors.ErrUnauthenticated)
	}

	req := models.BookingRequest{
		EventID:     eventID,
		BookingDate: time.Now().UTC(),
	}
	created, err := s.backend.AddBooking(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrAlreadyBooked) {
			return fmt.Errorf("book event %s: %w", eventID, apperrors.ErrAlreadyBooked)
		}
		return err
	}

	s.mu.Lock()
	s.booked[eventID] = *created
	s.mu.Unlock()

	// Best-effort resync; the local patch above already reflects the outcome.
	if err := s.Load(ctx); err != nil {
		s.log.Warn("booking resync failed", "error", err)
	}
	return nil
}

// Cancel soft-deletes a booking and drops it from the set.
func (s *State) Cancel(ctx context.Context, bookingID string) error {
	if s.sessions.Current() == nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, apperrors.ErrUnauthenticated)
	}

	if err := s.backend.SoftDeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	s.mu.Lock()
	for eventID, b := range s.booked {
		if b.ID == bookingID {
			delete(s.booked, eventID)
		}
	}
	s.mu.Unlock()
	return nil
}

// IsBooked reports whether the current user holds an active booking for the event.
func (s *State) IsBooked(eventID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.booked[eventID]
	return ok
}

// Bookings returns the current user's known bookings.
func (s *State) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]models.Booking, 0, len(s.booked))
	for _, b := range s.booked {
		bookings = append(bookings, b)
	}
	return bookings
}

// Reset clears the set, e.g. after logout.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booked = map[string]models.Booking{}
}
