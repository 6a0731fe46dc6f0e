package localstore

import (
	"context"
	"testing"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTestCatalog(t *testing.T, store *Store) (models.Category, models.Event) {
	t.Helper()
	ctx := context.Background()

	category := models.Category{ID: "cat-1", Name: "Music"}
	event := models.Event{
		ID:         "evt-1",
		Title:      "Jazz Night",
		CategoryID: category.ID,
		EventDate:  time.Now().AddDate(0, 0, 7),
		Venue:      "Blue Hall",
		Price:      25,
	}
	require.NoError(t, store.SeedCatalog(ctx, []models.Category{category}, []models.Event{event}))
	return category, event
}

func TestListEventsDenormalizesCategory(t *testing.T) {
	store, _ := newTestStore(t)
	_, event := seedTestCatalog(t, store)

	events, err := store.ListEvents(context.Background(), models.Page{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, "Music", events[0].CategoryName)
}

func TestSoftDeletedEventsHidden(t *testing.T) {
	store, _ := newTestStore(t)
	_, event := seedTestCatalog(t, store)
	ctx := context.Background()

	require.NoError(t, store.SoftDeleteEvent(ctx, event.ID))

	events, err := store.ListEvents(ctx, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, events)

	// a direct fetch still finds the archived row
	got, err := store.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestAddEventRequiresKnownCategory(t *testing.T) {
	store, _ := newTestStore(t)
	category, _ := seedTestCatalog(t, store)
	ctx := context.Background()

	draft := models.EventDraft{
		Title:      "Rock Night",
		CategoryID: "unknown",
		EventDate:  time.Now().AddDate(0, 0, 1),
	}
	_, err := store.AddEvent(ctx, draft)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	draft.CategoryID = category.ID
	created, err := store.AddEvent(ctx, draft)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, category.Name, created.CategoryName)
}

func TestAddEventValidatesDraft(t *testing.T) {
	store, _ := newTestStore(t)
	seedTestCatalog(t, store)

	_, err := store.AddEvent(context.Background(), models.EventDraft{CategoryID: "cat-1"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateEvent(t *testing.T) {
	store, _ := newTestStore(t)
	category, event := seedTestCatalog(t, store)
	ctx := context.Background()

	draft := models.EventDraft{
		Title:      "Jazz Night Extended",
		CategoryID: category.ID,
		EventDate:  event.EventDate,
		Venue:      "Grand Hall",
		Price:      30,
	}
	require.NoError(t, store.UpdateEvent(ctx, event.ID, draft))

	got, err := store.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night Extended", got.Title)
	assert.Equal(t, "Grand Hall", got.Venue)

	assert.ErrorIs(t, store.UpdateEvent(ctx, "missing", draft), apperrors.ErrNotFound)
}

func TestListEventsByCategory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	music := models.Category{ID: "cat-1", Name: "Music"}
	sport := models.Category{ID: "cat-2", Name: "Sport"}
	events := []models.Event{
		{ID: "e1", Title: "Concert", CategoryID: music.ID, EventDate: time.Now()},
		{ID: "e2", Title: "Match", CategoryID: sport.ID, EventDate: time.Now()},
		{ID: "e3", Title: "Opera", CategoryID: music.ID, EventDate: time.Now()},
	}
	require.NoError(t, store.SeedCatalog(ctx, []models.Category{music, sport}, events))

	matched, err := store.ListEventsByCategory(ctx, music.ID, models.Page{})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, "e1", matched[0].ID)
	assert.Equal(t, "e3", matched[1].ID)
}

func TestCategoryLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.AddCategory(ctx, "Theatre")
	require.NoError(t, err)

	_, err = store.AddCategory(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, store.UpdateCategory(ctx, created.ID, "Drama"))
	got, err := store.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)

	require.NoError(t, store.SoftDeleteCategory(ctx, created.ID))
	visible, err := store.ListCategories(ctx, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, visible)

	require.NoError(t, store.DeleteCategory(ctx, created.ID))
	_, err = store.GetCategory(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBookingLifecycle(t *testing.T) {
	store, tokens := newTestStore(t)
	_, event := seedTestCatalog(t, store)
	ctx := context.Background()

	resp, err := store.Register(ctx, models.RegisterRequest{
		UserName:        "erin",
		Email:           "erin@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Erin",
		LastName:        "Gray",
	})
	require.NoError(t, err)
	tokens.token = resp.Token

	booking, err := store.AddBooking(ctx, models.BookingRequest{EventID: event.ID})
	require.NoError(t, err)
	assert.Equal(t, event.ID, booking.EventID)
	assert.Equal(t, event.Title, booking.EventTitle)
	assert.False(t, booking.BookingDate.IsZero())

	// second active booking for the same event is rejected
	_, err = store.AddBooking(ctx, models.BookingRequest{EventID: event.ID})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	mine, err := store.UserBookings(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, store.SoftDeleteBooking(ctx, booking.ID))
	mine, err = store.UserBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// cancelled booking frees the slot for rebooking
	_, err = store.AddBooking(ctx, models.BookingRequest{EventID: event.ID})
	require.NoError(t, err)
}

func TestAddBookingUnknownEvent(t *testing.T) {
	store, tokens := newTestStore(t)
	seedTestCatalog(t, store)
	ctx := context.Background()

	resp, err := store.Register(ctx, models.RegisterRequest{
		UserName:        "finn",
		Email:           "finn@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
		FirstName:       "Finn",
		LastName:        "Hale",
	})
	require.NoError(t, err)
	tokens.token = resp.Token

	_, err = store.AddBooking(ctx, models.BookingRequest{EventID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddBookingRequiresToken(t *testing.T) {
	store, _ := newTestStore(t)
	_, event := seedTestCatalog(t, store)

	_, err := store.AddBooking(context.Background(), models.BookingRequest{EventID: event.ID})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
