package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/localstore"
	"eventhub/internal/logger"
	"eventhub/internal/models"
)

// Storage slots, named after the original client's browser-local keys.
const (
	slotToken        = "token"
	slotRefreshToken = "refreshToken"
	slotUserData     = "userData"
)

// Backend is the auth surface of a backend strategy (remote gateway or local store).
type Backend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Store owns the current authenticated identity. It persists the token pair
// and user record across restarts and is the only component allowed to touch
// those slots.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	storage localstore.Storage
	log     *slog.Logger

	session *models.Session
}

func New(backend Backend, storage localstore.Storage) *Store {
	return &Store{
		backend: backend,
		storage: storage,
		log:     logger.WithComponent("session"),
	}
}

// Current returns the active session, or nil when anonymous.
func (s *Store) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Login validates credentials against the backend and persists the session.
func (s *Store) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	session := resp.Session()
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.log.Info("logged in", "user_id", session.User.ID)
	copied := *session
	return &copied, nil
}

// Register creates a new identity and logs it in.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.backend.Register(ctx, req)
	if err != nil {
		return nil, err
	}

	session := resp.Session()
	if err := s.persist(ctx, session); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.log.Info("registered", "user_id", session.User.ID)
	copied := *session
	return &copied, nil
}

// Restore rebuilds the session from persisted state on startup. It never
// fails: any unusable persisted state is cleared and nil is returned.
func (s *Store) Restore(ctx context.Context) *models.Session {
	var token string
	if err := s.storage.Get(ctx, slotToken, &token); err != nil || token == "" {
		return nil
	}

	if exp, ok := tokenExpiry(token); ok && time.Now().After(exp) {
		s.log.Info("persisted token expired, clearing session")
		s.clearLocal(ctx)
		return nil
	}

	session := &models.Session{Token: token}
	if exp, ok := tokenExpiry(token); ok {
		session.Expiration = exp
	}
	_ = s.storage.Get(ctx, slotRefreshToken, &session.RefreshToken)

	user, err := s.backend.CurrentUser(ctx)
	switch {
	case err == nil:
		session.User = *user
	case errors.Is(err, apperrors.ErrUnauthorized) || errors.Is(err, apperrors.ErrAuthentication):
		// Token rejected by the backend: persisted state is dead weight.
		s.log.Info("persisted token rejected, clearing session")
		s.clearLocal(ctx)
		return nil
	default:
		// Backend unreachable. Fall back to the persisted user record if intact.
		var stored models.User
		if getErr := s.storage.Get(ctx, slotUserData, &stored); getErr != nil {
			s.log.Warn("restore failed and no persisted user record", "error", err)
			s.clearLocal(ctx)
			return nil
		}
		s.log.Warn("backend unreachable, restoring persisted identity", "error", err)
		session.User = stored
	}
	if session.User.Roles == nil {
		session.User.Roles = []string{}
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	copied := *session
	return &copied
}

// Logout invalidates the token server-side best-effort and always clears
// local persisted state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	refreshToken := ""
	if s.session != nil {
		refreshToken = s.session.RefreshToken
	}
	s.session = nil
	s.mu.Unlock()

	if refreshToken != "" {
		if err := s.backend.Logout(ctx, refreshToken); err != nil {
			s.log.Warn("server-side logout failed", "error", err)
		}
	}
	s.clearLocal(ctx)
	s.log.Info("logged out")
}

// Close drops the in-memory identity without touching persisted state.
// The next process restores it through Restore.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

func (s *Store) persist(ctx context.Context, session *models.Session) error {
	if err := s.storage.Set(ctx, slotToken, session.Token); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, slotRefreshToken, session.RefreshToken); err != nil {
		return err
	}
	return s.storage.Set(ctx, slotUserData, session.User)
}

func (s *Store) clearLocal(ctx context.Context) {
	for _, slot := range []string{slotToken, slotRefreshToken, slotUserData} {
		if err := s.storage.Remove(ctx, slot); err != nil {
			s.log.Warn("failed to clear slot", "slot", slot, "error", err)
		}
	}
}
