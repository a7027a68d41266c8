package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/anshgupta/merchant-desk/backend/internal/model/chat"
)

var (
	ErrSessionIDRequired = errors.New("session id is required")
	ErrSessionNotFound   = errors.New("session not found")
	ErrDuplicateSession  = errors.New("session already exists")
)

// Store keeps sessions and transcripts in process memory. Everything is
// lost on restart, which is acceptable for the widget's scope. The mutex
// also serializes id assignment, so message ids and timestamps always
// agree on ordering even under concurrent requests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
	nextID   int64
}

// NewStore bootstraps an empty in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
		nextID:   1,
	}
}

// CreateSession records a new session under the client-chosen id.
func (s *Store) CreateSession(_ context.Context, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		return chat.Session{}, ErrDuplicateSession
	}

	now := time.Now().UTC()
	session := chat.Session{SessionID: sessionID, CreatedAt: now, LastActivity: now}
	s.sessions[sessionID] = session
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Store) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// TouchSession refreshes lastActivity; unknown sessions are a no-op.
func (s *Store) TouchSession(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	session.LastActivity = time.Now().UTC()
	s.sessions[sessionID] = session
}

// EnsureSession creates the session when absent and touches it otherwise,
// backing the idempotent session endpoint.
func (s *Store) EnsureSession(_ context.Context, sessionID string) (chat.Session, error) {
	if sessionID == "" {
		return chat.Session{}, ErrSessionIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	session, ok := s.sessions[sessionID]
	if ok {
		session.LastActivity = now
	} else {
		session = chat.Session{SessionID: sessionID, CreatedAt: now, LastActivity: now}
	}
	s.sessions[sessionID] = session
	return session, nil
}

// AppendMessage stores a new turn with the next global id. The session is
// deliberately not checked; orphaned session ids are tolerated.
func (s *Store) AppendMessage(_ context.Context, sessionID, sender, content string) chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := chat.Message{
		ID:        s.nextID,
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.nextID++

	s.messages[sessionID] = append(s.messages[sessionID], message)
	return message
}

// ListMessages returns the session transcript in chronological order.
// Append order equals timestamp order by construction, so no sort is needed.
func (s *Store) ListMessages(_ context.Context, sessionID string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.messages[sessionID]
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied
}

// SearchMessages filters the transcript to turns containing query as a
// case-insensitive substring, preserving chronological order. An empty
// query matches nothing; the API layer rejects blank queries before the
// store is reached.
func (s *Store) SearchMessages(_ context.Context, sessionID, query string) []chat.Message {
	needle := strings.ToLower(query)
	if needle == "" {
		return []chat.Message{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]chat.Message, 0)
	for _, message := range s.messages[sessionID] {
		if strings.Contains(strings.ToLower(message.Content), needle) {
			matches = append(matches, message)
		}
	}
	return matches
}
