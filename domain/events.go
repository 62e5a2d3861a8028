package domain

import "fmt"

// NotificationStatus classifies a transient user notification
type NotificationStatus string

const (
	NotifySuccess NotificationStatus = "success"
	NotifyError   NotificationStatus = "error"
)

// Notification is the toast-equivalent surfaced after every auth and deal
// operation: a short title plus a descriptive message, often with an
// interpolated destination.
type Notification struct {
	Status      NotificationStatus
	Title       string
	Description string
}

// NotificationSink receives notifications for display. Embedders wire their
// own UI; the SDK never blocks on delivery.
type NotificationSink interface {
	Notify(n Notification)
}

// NopSink discards notifications. Used when the embedder does not care.
type NopSink struct{}

func (NopSink) Notify(Notification) {}

// NewSuccessNotification builds a success notification.
func NewSuccessNotification(title, format string, args ...interface{}) Notification {
	return Notification{
		Status:      NotifySuccess,
		Title:       title,
		Description: fmt.Sprintf(format, args...),
	}
}

// NewErrorNotification builds an error notification carrying the normalized
// failure message.
func NewErrorNotification(err error) Notification {
	n := Notification{Status: NotifyError, Title: "Error occurred"}
	if apiErr, ok := err.(*APIError); ok {
		n.Title = apiErr.Title
		n.Description = apiErr.Message
	} else if err != nil {
		n.Description = err.Error()
	} else {
		n.Description = GenericNetworkError
	}
	return n
}
