package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub/internal/config"
	"eventhub/internal/localstore"
	"eventhub/internal/logger"
	"eventhub/internal/mockapi"
	"eventhub/internal/models"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.WithComponent("mockserver")

	storage := localstore.NewFileStorage(cfg.StateDir + "/mock")
	store := localstore.New(storage, nil)

	if cfg.MockSeed {
		if err := seed(context.Background(), store); err != nil {
			logger.Fatal("failed to seed fixtures", "error", err)
		}
		log.Info("seeded fixture accounts and catalog",
			"admin", "admin@eventhub.local", "user", "user@eventhub.local")
	}

	server := mockapi.NewServer(store)

	httpServer := &http.Server{
		Addr:    ":" + cfg.MockPort,
		Handler: server.Handler(),
	}

	go func() {
		log.Info("mock server listening", "port", cfg.MockPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}

// seed загружает стартовые данные для локальной разработки
func seed(ctx context.Context, store *localstore.Store) error {
	err := store.SeedUsers(ctx, []localstore.SeedUser{
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
	})
	if err != nil {
		return err
	}

	music := models.Category{ID: uuid.NewString(), Name: "Music"}
	theatre := models.Category{ID: uuid.NewString(), Name: "Theatre"}
	sports := models.Category{ID: uuid.NewString(), Name: "Sports"}

	now := time.Now()
	events := []models.Event{
		{
			ID:           uuid.NewString(),
			Title:        "Symphony Under the Stars",
			Description:  "Open-air orchestral night at the riverside amphitheatre.",
			CategoryID:   music.ID,
			CategoryName: music.Name,
			EventDate:    now.AddDate(0, 0, 14),
			Venue:        "Riverside Amphitheatre",
			Price:        45,
		},
		{
			ID:           uuid.NewString(),
			Title:        "Hamlet",
			Description:  "Classic staging with a modern ensemble.",
			CategoryID:   theatre.ID,
			CategoryName: theatre.Name,
			EventDate:    now.AddDate(0, 1, 0),
			Venue:        "City Drama Theatre",
			Price:        30,
		},
		{
			ID:           uuid.NewString(),
			Title:        "Derby Night",
			Description:  "Season opener between the two city clubs.",
			CategoryID:   sports.ID,
			CategoryName: sports.Name,
			EventDate:    now.AddDate(0, 0, 7),
			Venue:        "Central Stadium",
			Price:        20,
		},
	}

	return store.SeedCatalog(ctx, []models.Category{music, theatre, sports}, events)
}
