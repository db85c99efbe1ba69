// Package memory keeps widget sessions in process memory. Sessions vanish
// with the process, which is all a widget needs when no database is set up.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"tradutor/internal/domain"
	"tradutor/internal/domain/entities"
	"tradutor/internal/ports/output"
)

var _ output.SessionRepository = (*SessionRepository)(nil)

// SessionRepository implements output.SessionRepository with a map. Sessions
// are copied in and out so callers never share state with the store.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]entities.Session)}
}

func (r *SessionRepository) Create(_ context.Context, session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[session.MessageID]; exists {
		return fmt.Errorf("create session: message %s already has a widget", session.MessageID)
	}
	r.sessions[session.MessageID] = *session
	return nil
}

func (r *SessionRepository) FindByMessageID(_ context.Context, messageID string) (*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[messageID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Update(_ context.Context, session *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[session.MessageID]; !ok {
		return domain.ErrSessionNotFound
	}
	r.sessions[session.MessageID] = *session
	return nil
}

// ListPending returns the Pending sessions ordered by message ID.
func (r *SessionRepository) ListPending(_ context.Context) ([]*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entities.Session
	for _, s := range r.sessions {
		if s.State == entities.StatePending {
			out = append(out, &s)
		}
	}
	slices.SortFunc(out, func(a, b *entities.Session) int {
		return strings.Compare(a.MessageID, b.MessageID)
	})
	return out, nil
}

func (r *SessionRepository) Delete(_ context.Context, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[messageID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, messageID)
	return nil
}

func (r *SessionRepository) DeleteUpdatedBefore(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
