package app

import (
	"fmt"
	"io"

	"eventhub/internal/admin"
	"eventhub/internal/booking"
	"eventhub/internal/cache"
	"eventhub/internal/config"
	"eventhub/internal/gateway"
	"eventhub/internal/localstore"
	"eventhub/internal/models"
	"eventhub/internal/session"
)

// backend is the full surface a strategy must cover. Both the remote
// gateway and the local store satisfy it.
type backend interface {
	session.Backend
	cache.Backend
	booking.Backend
}

// App wires one backend strategy, chosen by configuration, into the
// session store, the cache, the booking state and the admin gate.
type App struct {
	Config   *config.Config
	Session  *session.Store
	Cache    *cache.Cache
	Bookings *booking.State
	Admin    *admin.Gate

	storage localstore.Storage
}

// New builds the application from configuration. The backend strategy and
// the state storage are both selected here, once.
func New(cfg *config.Config) (*App, error) {
	var storage localstore.Storage
	switch cfg.Storage {
	case config.StorageValkey:
		valkey, err := localstore.NewValkeyStorage(localstore.ValkeyConfig{
			Addr:    cfg.ValkeyAddr,
			Prefix:  cfg.ValkeyPrefix,
			Timeout: cfg.ValkeyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("valkey storage: %w", err)
		}
		storage = valkey
	case config.StorageFile:
		storage = localstore.NewFileStorage(cfg.StateDir)
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	tokens := session.NewTokens(storage)

	var be backend
	switch cfg.Mode {
	case config.ModeLocal:
		be = localstore.New(storage, tokens)
	case config.ModeRemote:
		be = gateway.New(gateway.Config{
			BaseURL: cfg.APIBaseURL,
			Timeout: cfg.HTTPTimeout,
		}, tokens)
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}

	sess := session.New(be, storage)
	mirror := cache.New(be, models.Page{Size: cfg.PageSize})

	return &App{
		Config:   cfg,
		Session:  sess,
		Cache:    mirror,
		Bookings: booking.New(be, sess),
		Admin:    admin.NewGate(sess, mirror),
		storage:  storage,
	}, nil
}

// Close disposes in-memory state. Persisted slots survive for the next run.
func (a *App) Close() error {
	a.Cache.Close()
	a.Session.Close()
	if closer, ok := a.storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
