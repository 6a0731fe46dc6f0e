package localstore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/models"

	"github.com/google/uuid"
)

// Slot names. Collections are serialized as JSON and re-read verbatim.
const (
	slotUsers      = "users"
	slotEvents     = "events"
	slotCategories = "categories"
	slotBookings   = "bookings"
	slotSessions   = "sessions"
)

// TokenSource supplies the caller's bearer token, mirroring the gateway's contract.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Store is the locally persisted backend strategy. It satisfies the same
// interfaces as the remote gateway, backed by slot storage instead of HTTP.
// It also serves as the data layer of the mock fixture server.
type Store struct {
	mu         sync.Mutex
	storage    Storage
	tokens     TokenSource
	sessionTTL time.Duration
}

type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

type sessionEntry struct {
	UserID       string    `json:"userId"`
	RefreshToken string    `json:"refreshToken"`
	Expiration   time.Time `json:"expiration"`
}

// New creates a Store over the given slot storage. tokens may be nil when
// the store is driven by the mock server, which carries tokens per request.
func New(storage Storage, tokens TokenSource) *Store {
	return &Store{
		storage:    storage,
		tokens:     tokens,
		sessionTTL: 24 * time.Hour,
	}
}

func (s *Store) callerToken(ctx context.Context) string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.Token(ctx)
}

// collection loading; an empty slot reads as an empty collection

func (s *Store) loadUsers(ctx context.Context) ([]storedUser, error) {
	var users []storedUser
	if err := s.storage.Get(ctx, slotUsers, &users); err != nil && err != ErrNoSlot {
		return nil, err
	}
	return users, nil
}

func (s *Store) loadEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.storage.Get(ctx, slotEvents, &events); err != nil && err != ErrNoSlot {
		return nil, err
	}
	return events, nil
}

func (s *Store) loadCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.storage.Get(ctx, slotCategories, &categories); err != nil && err != ErrNoSlot {
		return nil, err
	}
	return categories, nil
}

func (s *Store) loadBookings(ctx context.Context) ([]storedBooking, error) {
	var bookings []storedBooking
	if err := s.storage.Get(ctx, slotBookings, &bookings); err != nil && err != ErrNoSlot {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) loadSessions(ctx context.Context) (map[string]sessionEntry, error) {
	sessions := map[string]sessionEntry{}
	if err := s.storage.Get(ctx, slotSessions, &sessions); err != nil && err != ErrNoSlot {
		return nil, err
	}
	return sessions, nil
}

// Auth operations

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", sum)
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Login validates credentials against the local user table.
func (s *Store) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	hash := hashPassword(req.Password)
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) && !u.IsDeleted {
			if u.PasswordHash != hash {
				break
			}
			return s.openSession(ctx, u.User)
		}
	}
	return nil, fmt.Errorf("login %s: %w", req.Email, apperrors.ErrAuthentication)
}

// Register creates a new identity and logs it in.
func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) || strings.EqualFold(u.UserName, req.UserName) {
			return nil, fmt.Errorf("register %s: %w", req.Email, apperrors.ErrConflict)
		}
	}

	user := storedUser{
		User: models.User{
			ID:        uuid.New().String(),
			UserName:  req.UserName,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			CreatedAt: time.Now().UTC(),
			Roles:     []string{"User"},
		},
		PasswordHash: hashPassword(req.Password),
	}
	users = append(users, user)

	if err := s.storage.Set(ctx, slotUsers, users); err != nil {
		return nil, err
	}
	return s.openSession(ctx, user.User)
}

// openSession mints a token pair for the user. Caller holds the lock.
func (s *Store) openSession(ctx context.Context, user models.User) (*models.AuthResponse, error) {
	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	token := newToken()
	entry := sessionEntry{
		UserID:       user.ID,
		RefreshToken: newToken(),
		Expiration:   time.Now().UTC().Add(s.sessionTTL),
	}
	sessions[token] = entry

	if err := s.storage.Set(ctx, slotSessions, sessions); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:        token,
		RefreshToken: entry.RefreshToken,
		Expiration:   entry.Expiration,
		UserID:       user.ID,
		UserName:     user.UserName,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Roles:        append([]string{}, user.Roles...),
	}, nil
}

// CurrentUser resolves the identity behind the ambient token source.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.CurrentUserByToken(ctx, s.callerToken(ctx))
}

// CurrentUserByToken resolves the identity behind an explicit token.
func (s *Store) CurrentUserByToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByToken(ctx, token)
}

// userByToken resolves a token to its user. Caller holds the lock.
func (s *Store) userByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("no token: %w", apperrors.ErrUnauthorized)
	}

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := sessions[token]
	if !ok || time.Now().After(entry.Expiration) {
		return nil, fmt.Errorf("token not recognized: %w", apperrors.ErrUnauthorized)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == entry.UserID && !u.IsDeleted {
			user := u.User
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", entry.UserID, apperrors.ErrUnauthorized)
}

// Logout drops the session holding the given refresh token.
func (s *Store) Logout(ctx context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.loadSessions(ctx)
	if err != nil {
		return err
	}
	for token, entry := range sessions {
		if entry.RefreshToken == refreshToken {
			delete(sessions, token)
		}
	}
	return s.storage.Set(ctx, slotSessions, sessions)
}

// SeedUser describes a fixture account.
type SeedUser struct {
	UserName  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

// SeedUsers replaces the user table with fixture accounts.
func (s *Store) SeedUsers(ctx context.Context, seeds []SeedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]storedUser, 0, len(seeds))
	for _, seed := range seeds {
		roles := seed.Roles
		if len(roles) == 0 {
			roles = []string{"User"}
		}
		users = append(users, storedUser{
			User: models.User{
				ID:        uuid.New().String(),
				UserName:  seed.UserName,
				Email:     seed.Email,
				FirstName: seed.FirstName,
				LastName:  seed.LastName,
				CreatedAt: time.Now().UTC(),
				Roles:     roles,
			},
			PasswordHash: hashPassword(seed.Password),
		})
	}
	return s.storage.Set(ctx, slotUsers, users)
}

func paginate[T any](items []T, page models.Page) []T {
	page = page.Normalize()
	start := (page.Number - 1) * page.Size
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
