package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/redis"
	"github.com/google/uuid"
)

// Manager stores refresh tokens in Redis keyed by their SHA-256 digest.
// Only the digest is persisted; the raw token travels to the client once.
type Manager struct {
	store *redis.Client
	ttl   time.Duration
}

func NewManager(store *redis.Client, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Issue creates a fresh refresh token bound to the user and returns the raw token.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := m.store.Set(ctx, refreshKey(token), userID.String(), m.ttl); err != nil {
		return "", fmt.Errorf("persist refresh token: %w", err)
	}
	return token, nil
}

// Validate returns the user the refresh token belongs to, or false when the
// token is unknown or expired.
func (m *Manager) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	val, ok, err := m.store.Get(ctx, refreshKey(token))
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup refresh token: %w", err)
	}
	if !ok {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, true, nil
}

// Rotate revokes the old token and issues a new one for the same user.
// The old token must still be valid.
func (m *Manager) Rotate(ctx context.Context, token string) (uuid.UUID, string, error) {
	userID, ok, err := m.Validate(ctx, token)
	if err != nil {
		return uuid.Nil, "", err
	}
	if !ok {
		return uuid.Nil, "", fmt.Errorf("refresh token not found")
	}

	if err := m.Revoke(ctx, token); err != nil {
		return uuid.Nil, "", err
	}

	next, err := m.Issue(ctx, userID)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, next, nil
}

// Revoke deletes the refresh token. Revoking an unknown token is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.store.Del(ctx, refreshKey(token))
}

func refreshKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return redis.Key("session", "refresh", hex.EncodeToString(sum[:]))
}
