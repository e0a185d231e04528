// Package session loads, persists and rotates per-client session state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/profile-server/internal/model"
)

var _ model.SessionStore = (*MemoryStore)(nil)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]model.SessionState)}
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID, now time.Time) (model.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok || !state.ExpiresAt.After(now) {
		return model.SessionState{}, model.ErrNotFound
	}
	return state, nil
}

func (s *MemoryStore) Save(_ context.Context, state model.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.ID] = state
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, state := range s.sessions {
		if !state.ExpiresAt.After(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
