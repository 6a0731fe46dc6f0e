package session

import (
	"context"
	"time"

	"eventhub/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens reads the persisted access token per request, the way the original
// client re-read its storage on every call. Satisfies the token source
// contracts of both backend strategies.
type Tokens struct {
	storage localstore.Storage
}

func NewTokens(storage localstore.Storage) *Tokens {
	return &Tokens{storage: storage}
}

func (t *Tokens) Token(ctx context.Context) string {
	var token string
	if err := t.storage.Get(ctx, slotToken, &token); err != nil {
		return ""
	}
	return token
}

// tokenExpiry peeks at the exp claim of a JWT access token. The client holds
// no signing key, so the claim is read unverified; the backend stays the
// authority. Opaque (non-JWT) tokens report no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
