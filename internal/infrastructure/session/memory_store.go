package session

import (
	"errors"
	"sync"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
)

// MemoryStore keeps the session in memory. It exists so the auth service
// can be exercised without HTTP plumbing; tests inject it wherever a
// ports.SessionStore is expected.
type MemoryStore struct {
	mu   sync.Mutex
	sess *domain.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, nil
	}
	out := *s.sess
	return &out, nil
}

func (s *MemoryStore) Save(token string, user *domain.User) error {
	if token == "" || user == nil {
		return errors.New("session: token y usuario deben guardarse juntos")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &domain.Session{Token: token, User: user}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}
