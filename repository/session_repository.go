package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"holding-sim/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository holds simulation sessions. Update applies fn to the
// stored session atomically; if fn returns an error nothing is written.
type SessionRepository interface {
	Create(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Update(ctx context.Context, id string, fn func(*domain.Session) error) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type SessionRepositoryMemory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionRepositoryMemory() *SessionRepositoryMemory {
	return &SessionRepositoryMemory{
		sessions: make(map[string]domain.Session),
	}
}

func (r *SessionRepositoryMemory) Create(ctx context.Context, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = copySession(s)
	return nil
}

func (r *SessionRepositoryMemory) Get(ctx context.Context, id string) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	return copySession(s), nil
}

func (r *SessionRepositoryMemory) Update(
	ctx context.Context,
	id string,
	fn func(*domain.Session) error,
) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}

	next := copySession(current)
	if err := fn(&next); err != nil {
		return copySession(current), err
	}
	next.UpdatedAt = time.Now().UTC()
	r.sessions[id] = next
	return copySession(next), nil
}

func (r *SessionRepositoryMemory) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// copySession detaches the error map and the pointers from the stored value.
func copySession(s domain.Session) domain.Session {
	errs := make(domain.ValidationErrors, len(s.Errors))
	for k, v := range s.Errors {
		errs[k] = v
	}
	s.Errors = errs
	if s.Result != nil {
		r := *s.Result
		s.Result = &r
	}
	if s.RunInputs != nil {
		in := *s.RunInputs
		s.RunInputs = &in
	}
	return s
}
