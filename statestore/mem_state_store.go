package statestore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

// MemStateStore implements the state contract in memory for tests.
type MemStateStore struct {
	mu     sync.Mutex
	now    func() time.Time
	logIn  map[string]time.Time
	notify map[string]notifyState
}

type notifyState struct {
	userID    string
	expiresAt time.Time
}

func NewMemStateStore() *MemStateStore {
	return &MemStateStore{
		now:    time.Now,
		logIn:  map[string]time.Time{},
		notify: map[string]notifyState{},
	}
}

// SetClock replaces the time source so tests can force expiry.
func (m *MemStateStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemStateStore) CreateLogInState(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := uuid.NewString()
	m.logIn[state] = m.now().Add(stateTTL)
	return state, nil
}

func (m *MemStateStore) ConsumeLogInState(_ context.Context, state string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiresAt, ok := m.logIn[state]
	if !ok {
		return false, nil
	}
	delete(m.logIn, state)
	return m.now().Before(expiresAt), nil
}

func (m *MemStateStore) CreateNotifyState(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := uuid.NewString()
	m.notify[state] = notifyState{userID: userID, expiresAt: m.now().Add(stateTTL)}
	return state, nil
}

func (m *MemStateStore) ConsumeNotifyState(_ context.Context, state string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.notify[state]
	if !ok {
		return "", errors.Wrapf(model.ErrNotFound, "notify state %s", state)
	}
	delete(m.notify, state)
	if !m.now().Before(entry.expiresAt) {
		return "", errors.Wrapf(model.ErrNotFound, "notify state %s", state)
	}
	return entry.userID, nil
}
