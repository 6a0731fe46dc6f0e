package integration

import (
	"context"
	"testing"

	"eventhub/internal/app"
	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlow_BrowseLoginBook walks the main user journey: browse the catalog
// anonymously, log in, book an event, hit the duplicate guard, cancel.
func TestFlow_BrowseLoginBook(t *testing.T) {
	application := newTestApp(t, t.TempDir())
	ctx := context.Background()

	LogTestStep(t, "Browsing the catalog anonymously")
	require.NoError(t, application.Cache.Refresh(ctx))
	events := application.Cache.Events()
	require.NotEmpty(t, events)
	require.NotEmpty(t, application.Cache.Categories())
	target := events[0]
	LogTestResult(t, "Catalog loaded: %d events", len(events))

	LogTestStep(t, "Booking before login must be rejected")
	err := application.Bookings.BookEvent(ctx, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	LogTestStep(t, "Logging in as the regular user")
	sess, err := application.Session.Login(ctx,
		models.LoginRequest{Email: "user@eventhub.local", Password: "user123"})
	require.NoError(t, err)
	assert.False(t, application.Admin.IsAdmin())
	LogTestResult(t, "Logged in as %s", sess.User.UserName)

	LogTestStep(t, "Booking event %s", target.Title)
	require.NoError(t, application.Bookings.BookEvent(ctx, target.ID))
	assert.True(t, application.Bookings.IsBooked(target.ID))

	LogTestStep(t, "A second booking of the same event must fail")
	err = application.Bookings.BookEvent(ctx, target.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyBooked)
	assert.True(t, application.Bookings.IsBooked(target.ID))

	LogTestStep(t, "Cancelling the booking")
	bookings := application.Bookings.Bookings()
	require.Len(t, bookings, 1)
	require.NoError(t, application.Bookings.Cancel(ctx, bookings[0].ID))
	assert.False(t, application.Bookings.IsBooked(target.ID))

	LogTestResult(t, "✅ Booking journey completed")
}

// TestFlow_SessionSurvivesRestart logs in, tears the application down and
// rebuilds it over the same state directory, expecting the identity back.
func TestFlow_SessionSurvivesRestart(t *testing.T) {
	stateDir := t.TempDir()
	ctx := context.Background()

	first := newTestApp(t, stateDir)
	_, err := first.Session.Login(ctx,
		models.LoginRequest{Email: "user@eventhub.local", Password: "user123"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	LogTestStep(t, "Restarting over the same state directory")
	second, err := app.New(testConfig(stateDir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	sess := second.Session.Restore(ctx)
	require.NotNil(t, sess, "persisted session must restore")
	assert.Equal(t, "user", sess.User.UserName)

	LogTestStep(t, "Logging out clears persisted state")
	second.Session.Logout(ctx)

	third, err := app.New(testConfig(stateDir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = third.Close() })
	assert.Nil(t, third.Session.Restore(ctx))

	LogTestResult(t, "✅ Session restart journey completed")
}

// TestFlow_AdminCatalogManagement exercises the role gate and the catalog
// mutations behind it.
func TestFlow_AdminCatalogManagement(t *testing.T) {
	application := newTestApp(t, t.TempDir())
	ctx := context.Background()

	LogTestStep(t, "Regular users must not pass the admin gate")
	_, err := application.Session.Login(ctx,
		models.LoginRequest{Email: "user@eventhub.local", Password: "user123"})
	require.NoError(t, err)
	_, err = application.Admin.AddCategory(ctx, "Opera")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	application.Session.Logout(ctx)

	LogTestStep(t, "Logging in as the administrator")
	_, err = application.Session.Login(ctx,
		models.LoginRequest{Email: "admin@eventhub.local", Password: "admin123"})
	require.NoError(t, err)
	require.True(t, application.Admin.IsAdmin())

	require.NoError(t, application.Cache.Refresh(ctx))

	LogTestStep(t, "Creating a category and an event in it")
	category, err := application.Admin.AddCategory(ctx, "Opera")
	require.NoError(t, err)

	created, err := application.Admin.AddEvent(ctx, models.EventDraft{
		Title:      "La Traviata",
		CategoryID: category.ID,
		EventDate:  application.Cache.Events()[0].EventDate,
		Venue:      "Opera House",
		Price:      60,
	})
	require.NoError(t, err)
	AssertEventExists(t, application.Cache.Events(), created.ID)
	LogTestResult(t, "Event %s created", created.Title)

	LogTestStep(t, "Renaming the category patches the mirror")
	require.NoError(t, application.Admin.UpdateCategory(ctx, category.ID, "Classical Opera"))
	found := false
	for _, c := range application.Cache.Categories() {
		if c.ID == category.ID {
			assert.Equal(t, "Classical Opera", c.Name)
			found = true
		}
	}
	require.True(t, found)

	LogTestStep(t, "Archiving the event drops it from listings")
	require.NoError(t, application.Admin.SoftDeleteEvent(ctx, created.ID))
	AssertEventAbsent(t, application.Cache.Events(), created.ID)

	LogTestResult(t, "✅ Admin catalog journey completed")
}
