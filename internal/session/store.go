// Package session persists the opaque backend token issued at login, keyed by
// the storefront session id carried in the browser's cookie.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Store persists at most one backend token per storefront session.
type Store interface {
	// SaveToken stores the token for the session, replacing any previous one.
	SaveToken(ctx context.Context, sessionID, token string) error
	// Token returns the stored token, or "" when none exists.
	Token(ctx context.Context, sessionID string) (string, error)
	// DeleteToken removes the stored token. Deleting an absent token is not
	// an error.
	DeleteToken(ctx context.Context, sessionID string) error
}

// NewSessionID mints a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// MemoryStore keeps tokens in process memory; used in dev mode and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: map[string]string{}}
}

func (s *MemoryStore) SaveToken(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sessionID] = token
	return nil
}

func (s *MemoryStore) Token(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens[sessionID], nil
}

func (s *MemoryStore) DeleteToken(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sessionID)
	return nil
}
