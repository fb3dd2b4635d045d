package session

import (
	"context"
	"errors"
	"sync"

	"github.com/nhle/tempinbox/internal/model"
)

// ErrPartialSession is returned by Replace for sessions missing a field.
var ErrPartialSession = errors.New("session is missing address, token or account id")

// Persister is the durable storage behind a Store. It is implemented by
// store.SQLiteStore and credential.KeyringStore.
type Persister interface {
	LoadSession(ctx context.Context) (model.Session, error)
	SaveSession(ctx context.Context, s model.Session) error
}

// Store holds the single current session shared by the manager and the
// poller. The in-memory copy is only swapped after the persister accepted
// the whole triple.
type Store struct {
	persister Persister

	mu      sync.RWMutex
	current model.Session
}

// NewStore creates an empty Store backed by p.
func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Current returns the active session and whether one exists.
func (s *Store) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current.Valid()
}

// Restore loads the persisted session. A partial or unreadable record
// leaves the store empty and reports ok=false.
func (s *Store) Restore(ctx context.Context) (model.Session, bool, error) {
	sess, err := s.persister.LoadSession(ctx)
	if err != nil {
		return model.Session{}, false, err
	}
	if !sess.Valid() {
		return model.Session{}, false, nil
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess, true, nil
}

// Replace persists sess and makes it current. The previous session is
// overwritten wholesale.
func (s *Store) Replace(ctx context.Context, sess model.Session) error {
	if !sess.Valid() {
		return ErrPartialSession
	}
	if err := s.persister.SaveSession(ctx, sess); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}
