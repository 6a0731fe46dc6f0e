package integration

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/app"
	"eventhub/internal/config"
	"eventhub/internal/localstore"
	"eventhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// LogTestStep logs a test step for better readability
func LogTestStep(t *testing.T, format string, args ...any) {
	t.Logf("STEP: "+format, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, format string, args ...any) {
	t.Logf("RESULT: "+format, args...)
}

// testConfig builds a configuration running entirely against local state
// under a per-test directory.
func testConfig(stateDir string) *config.Config {
	return &config.Config{
		Mode:      config.ModeLocal,
		LogLevel:  "error",
		LogFormat: "text",
		Storage:   config.StorageFile,
		StateDir:  stateDir,
		PageSize:  10,
	}
}

// newTestApp seeds fixture data and builds the application over it.
func newTestApp(t *testing.T, stateDir string) *app.App {
	t.Helper()
	seedFixtures(t, stateDir)

	application, err := app.New(testConfig(stateDir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

// seedFixtures writes accounts and a catalog into the state directory. A
// second store over the same directory sees the same slots.
func seedFixtures(t *testing.T, stateDir string) {
	t.Helper()
	ctx := context.Background()
	store := localstore.New(localstore.NewFileStorage(stateDir), nil)

	require.NoError(t, store.SeedUsers(ctx, []localstore.SeedUser{
		{
			UserName:  "admin",
			Email:     "admin@eventhub.local",
			Password:  "admin123",
			FirstName: "Admin",
			LastName:  "User",
			Roles:     []string{"Admin", "User"},
		},
		{
			UserName:  "user",
			Email:     "user@eventhub.local",
			Password:  "user123",
			FirstName: "Regular",
			LastName:  "User",
			Roles:     []string{"User"},
		},
	}))

	music := models.Category{ID: uuid.NewString(), Name: "Music"}
	theatre := models.Category{ID: uuid.NewString(), Name: "Theatre"}
	events := []models.Event{
		{
			ID:         uuid.NewString(),
			Title:      "Symphony Under the Stars",
			CategoryID: music.ID,
			EventDate:  time.Now().AddDate(0, 0, 14),
			Venue:      "Riverside Amphitheatre",
			Price:      45,
		},
		{
			ID:         uuid.NewString(),
			Title:      "Hamlet",
			CategoryID: theatre.ID,
			EventDate:  time.Now().AddDate(0, 1, 0),
			Venue:      "City Drama Theatre",
			Price:      30,
		},
	}
	require.NoError(t, store.SeedCatalog(ctx, []models.Category{music, theatre}, events))
}

// AssertEventExists checks that an event is present in a listing
func AssertEventExists(t *testing.T, events []models.Event, id string) {
	t.Helper()
	for _, e := range events {
		if e.ID == id {
			return
		}
	}
	t.Fatalf("event %s not found in listing of %d events", id, len(events))
}

// AssertEventAbsent checks that an event is not present in a listing
func AssertEventAbsent(t *testing.T, events []models.Event, id string) {
	t.Helper()
	for _, e := range events {
		if e.ID == id {
			t.Fatalf("event %s unexpectedly present in listing", id)
		}
	}
}
