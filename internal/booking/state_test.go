package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookings is an in-memory booking backend.
type fakeBookings struct {
	bookings []models.Booking
	addErr   error
	nextID   int
}

func (f *fakeBookings) UserBookings(context.Context) ([]models.Booking, error) {
	active := []models.Booking{}
	for _, b := range f.bookings {
		if !b.IsDeleted {
			active = append(active, b)
		}
	}
	return active, nil
}

func (f *fakeBookings) AddBooking(_ context.Context, req models.BookingRequest) (*models.Booking, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	for _, b := range f.bookings {
		if b.EventID == req.EventID && !b.IsDeleted {
			return nil, fmt.Errorf("event %s: %w", req.EventID, apperrors.ErrAlreadyBooked)
		}
	}
	f.nextID++
	booking := models.Booking{
		ID:          fmt.Sprintf("b%d", f.nextID),
		EventID:     req.EventID,
		BookingDate: req.BookingDate,
	}
	f.bookings = append(f.bookings, booking)
	return &booking, nil
}

func (f *fakeBookings) SoftDeleteBooking(_ context.Context, id string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].IsDeleted = true
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", id, apperrors.ErrNotFound)
}

// fakeSessions toggles between anonymous and logged in.
type fakeSessions struct {
	session *models.Session
}

func (f *fakeSessions) Current() *models.Session {
	return f.session
}

func loggedIn() *fakeSessions {
	return &fakeSessions{session: &models.Session{
		User:  models.User{ID: "u1", UserName: "alice", Roles: []string{"User"}},
		Token: "tok",
	}}
}

func TestBookEventRequiresSession(t *testing.T) {
	state := New(&fakeBookings{}, &fakeSessions{})

	err := state.BookEvent(context.Background(), "e1")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.False(t, state.IsBooked("e1"))
}

func TestLoadRequiresSession(t *testing.T) {
	state := New(&fakeBookings{}, &fakeSessions{})
	assert.ErrorIs(t, state.Load(context.Background()), apperrors.ErrUnauthenticated)
}

func TestBookEventMarksEvent(t *testing.T) {
	state := New(&fakeBookings{}, loggedIn())
	ctx := context.Background()

	require.NoError(t, state.BookEvent(ctx, "e1"))
	assert.True(t, state.IsBooked("e1"))
	assert.False(t, state.IsBooked("e2"))

	bookings := state.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, "e1", bookings[0].EventID)
}

func TestBookEventDuplicate(t *testing.T) {
	state := New(&fakeBookings{}, loggedIn())
	ctx := context.Background()

	require.NoError(t, state.BookEvent(ctx, "e1"))

	err := state.BookEvent(ctx, "e1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
	assert.True(t, state.IsBooked("e1"), "the original booking survives")
}

func TestBookEventRewrapsBareConflict(t *testing.T) {
	backend := &fakeBookings{addErr: fmt.Errorf("duplicate: %w", apperrors.ErrConflict)}
	state := New(backend, loggedIn())

	err := state.BookEvent(context.Background(), "e1")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
}

func TestCancelFreesEvent(t *testing.T) {
	backend := &fakeBookings{}
	state := New(backend, loggedIn())
	ctx := context.Background()

	require.NoError(t, state.BookEvent(ctx, "e1"))
	bookings := state.Bookings()
	require.Len(t, bookings, 1)

	require.NoError(t, state.Cancel(ctx, bookings[0].ID))
	assert.False(t, state.IsBooked("e1"))

	// the slot is free for rebooking
	require.NoError(t, state.BookEvent(ctx, "e1"))
	assert.True(t, state.IsBooked("e1"))
}

func TestLoadRebuildsSet(t *testing.T) {
	backend := &fakeBookings{bookings: []models.Booking{
		{ID: "b1", EventID: "e1", BookingDate: time.Now()},
		{ID: "b2", EventID: "e2", BookingDate: time.Now(), IsDeleted: true},
	}}
	state := New(backend, loggedIn())

	require.NoError(t, state.Load(context.Background()))
	assert.True(t, state.IsBooked("e1"))
	assert.False(t, state.IsBooked("e2"), "cancelled bookings stay out of the set")
}

func TestResetClearsSet(t *testing.T) {
	state := New(&fakeBookings{}, loggedIn())
	require.NoError(t, state.BookEvent(context.Background(), "e1"))

	state.Reset()
	assert.False(t, state.IsBooked("e1"))
	assert.Empty(t, state.Bookings())
}
