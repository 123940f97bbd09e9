// Package memory provides an in-process conversation store for tests and
// single-instance bots. State is lost on restart.
package memory

import (
	"context"
	"sync"
)

type session struct {
	state string
	data  map[string]string
}

// Store keeps conversation sessions in a mutex-guarded map.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*session
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[int64]*session)}
}

// State returns the current machine state for a conversation, or the empty
// string when the conversation has no session.
func (s *Store) State(_ context.Context, conversationID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[conversationID]; ok {
		return sess.state, nil
	}
	return "", nil
}

// SetState updates the machine state, creating the session if necessary.
// An empty state clears the pointer but keeps stored answers.
func (s *Store) SetState(_ context.Context, conversationID int64, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(conversationID).state = state
	return nil
}

// Data returns a copy of the conversation's stored answers.
func (s *Store) Data(_ context.Context, conversationID int64) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[conversationID]
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(sess.data))
	for k, v := range sess.data {
		out[k] = v
	}
	return out, nil
}

// UpdateData stores one answer under its data key.
func (s *Store) UpdateData(_ context.Context, conversationID int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(conversationID).data[key] = value
	return nil
}

// Clear removes the whole session, state and answers included.
func (s *Store) Clear(_ context.Context, conversationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
	return nil
}

func (s *Store) ensure(conversationID int64) *session {
	sess, ok := s.sessions[conversationID]
	if !ok {
		sess = &session{data: make(map[string]string)}
		s.sessions[conversationID] = sess
	}
	return sess
}
