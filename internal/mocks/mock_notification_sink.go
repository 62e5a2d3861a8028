package mocks

import (
	"sync"

	"github.com/AllStackDev1/oja-client/domain"
)

// MockNotificationSink implements domain.NotificationSink, recording every
// notification for assertions.
type MockNotificationSink struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

// NewMockNotificationSink creates a new MockNotificationSink
func NewMockNotificationSink() *MockNotificationSink {
	return &MockNotificationSink{}
}

// Notify records the notification.
func (m *MockNotificationSink) Notify(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
}

// All returns every recorded notification, in order.
func (m *MockNotificationSink) All() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.notifications...)
}

// Last returns the most recent notification, if any.
func (m *MockNotificationSink) Last() (domain.Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.notifications) == 0 {
		return domain.Notification{}, false
	}
	return m.notifications[len(m.notifications)-1], true
}

// Compile-time interface compliance verification
var _ domain.NotificationSink = (*MockNotificationSink)(nil)
