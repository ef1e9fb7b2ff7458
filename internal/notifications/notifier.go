// Package notifications collects operator-facing success/error events. The
// display collaborator owns rendering and timed removal (3-second
// auto-dismiss); this side only accumulates and serves them.
package notifications

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"nutrition-catalog-service/internal/models"
)

// maxRetained bounds the in-memory backlog; oldest entries are dropped first.
const maxRetained = 100

// Notifier is a bounded, thread-safe notification sink. IDs are the
// unix-millisecond creation timestamps, bumped when two pushes land in the
// same millisecond so IDs stay unique.
type Notifier struct {
	mu      sync.Mutex
	entries []models.Notification
	lastID  int64
	logger  *logrus.Entry
}

func NewNotifier(logger *logrus.Logger) *Notifier {
	return &Notifier{
		logger: logger.WithField("component", "notifications"),
	}
}

func (n *Notifier) push(message string, kind models.NotificationType) models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= n.lastID {
		id = n.lastID + 1
	}
	n.lastID = id

	entry := models.Notification{ID: id, Message: message, Type: kind}
	n.entries = append(n.entries, entry)
	if len(n.entries) > maxRetained {
		n.entries = n.entries[len(n.entries)-maxRetained:]
	}
	return entry
}

// Success records a success notification.
func (n *Notifier) Success(message string) models.Notification {
	n.logger.WithField("type", "success").Info(message)
	return n.push(message, models.NotificationSuccess)
}

// Error records an error notification.
func (n *Notifier) Error(message string) models.Notification {
	n.logger.WithField("type", "error").Error(message)
	return n.push(message, models.NotificationError)
}

// Recent returns the retained notifications, oldest first.
func (n *Notifier) Recent() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.Notification, len(n.entries))
	copy(out, n.entries)
	return out
}

// Remove drops the notification with the given ID, reporting whether it was
// present. Used by the display collaborator once an entry has been shown.
func (n *Notifier) Remove(id int64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, entry := range n.entries {
		if entry.ID == id {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return true
		}
	}
	return false
}
