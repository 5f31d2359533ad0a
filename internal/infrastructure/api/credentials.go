package api

import (
	"sync"

	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
)

// StaticCredentialStore holds a token issued out of band (login screen,
// environment). Invalidate empties it; subsequent reads fail until the
// hosting application sets a fresh one.
type StaticCredentialStore struct {
	mu    sync.RWMutex
	token string
}

func NewStaticCredentialStore(token string) *StaticCredentialStore {
	return &StaticCredentialStore{token: token}
}

func (s *StaticCredentialStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", domainErrors.ErrUnauthorized
	}
	return s.token, nil
}

func (s *StaticCredentialStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *StaticCredentialStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
