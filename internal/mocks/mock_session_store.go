package mocks

import (
	"context"
	"sync"

	"github.com/AllStackDev1/oja-client/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Unless the
// func fields are set it behaves as a working in-memory store.
type MockSessionStore struct {
	SaveFunc  func(ctx context.Context, session *domain.Session) error
	LoadFunc  func(ctx context.Context) (*domain.Session, error)
	ClearFunc func(ctx context.Context) error

	mu      sync.Mutex
	session *domain.Session
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Save stores the session in memory unless SaveFunc overrides it.
func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	return nil
}

// Load returns the stored session or domain.ErrNoSession.
func (m *MockSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, domain.ErrNoSession
	}
	return m.session, nil
}

// Clear drops the stored session.
func (m *MockSessionStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// Stored returns the currently held session without going through Load.
func (m *MockSessionStore) Stored() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
