package trackers

import "sync"

const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification is a non-blocking, user-visible message.
type Notification struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Notifier interface {
	Notify(notification Notification)
}

// Inbox collects notifications in order. The zero value is ready to use.
type Inbox struct {
	mu    sync.Mutex
	items []Notification
}

func (inbox *Inbox) Notify(notification Notification) {
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	inbox.items = append(inbox.items, notification)
}

func (inbox *Inbox) Notifications() []Notification {
	inbox.mu.Lock()
	defer inbox.mu.Unlock()
	return append([]Notification(nil), inbox.items...)
}

func (inbox *Inbox) HasErrors() bool {
	for _, notification := range inbox.Notifications() {
		if notification.Kind == NotificationError {
			return true
		}
	}
	return false
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

func saveFailed(description string) Notification {
	return Notification{
		Kind:        NotificationError,
		Title:       "Erro ao salvar",
		Description: description,
	}
}
