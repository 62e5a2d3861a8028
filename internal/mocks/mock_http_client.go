package mocks

import (
	"context"
	"net/url"
	"sync"

	"github.com/AllStackDev1/oja-client/domain"
)

// MockHTTPClient implements domain.HTTPClient for testing
type MockHTTPClient struct {
	GetFunc   func(ctx context.Context, path string, query url.Values) (*domain.Envelope, error)
	PostFunc  func(ctx context.Context, path string, body interface{}) (*domain.Envelope, error)
	PatchFunc func(ctx context.Context, path string, body interface{}) (*domain.Envelope, error)

	mu     sync.Mutex
	token  string
	tokens []string
}

// NewMockHTTPClient creates a new MockHTTPClient with default behaviors
func NewMockHTTPClient() *MockHTTPClient {
	return &MockHTTPClient{}
}

// Get delegates to GetFunc; default is an empty successful envelope.
func (m *MockHTTPClient) Get(ctx context.Context, path string, query url.Values) (*domain.Envelope, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, path, query)
	}
	return &domain.Envelope{Success: true}, nil
}

// Post delegates to PostFunc; default is an empty successful envelope.
func (m *MockHTTPClient) Post(ctx context.Context, path string, body interface{}) (*domain.Envelope, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, path, body)
	}
	return &domain.Envelope{Success: true}, nil
}

// Patch delegates to PatchFunc; default is an empty successful envelope.
func (m *MockHTTPClient) Patch(ctx context.Context, path string, body interface{}) (*domain.Envelope, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, path, body)
	}
	return &domain.Envelope{Success: true}, nil
}

// SetAuthToken records every installed token for assertions.
func (m *MockHTTPClient) SetAuthToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.tokens = append(m.tokens, token)
}

// AuthToken returns the currently installed token.
func (m *MockHTTPClient) AuthToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// AuthTokenHistory returns every token installed, in order.
func (m *MockHTTPClient) AuthTokenHistory() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}

// Compile-time interface compliance verification
var _ domain.HTTPClient = (*MockHTTPClient)(nil)
