package models

// NotificationType distinguishes operator-facing notification severities.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is a single operator-facing event. ID is the unix-millisecond
// timestamp of creation. Display and timed removal (the UI auto-dismisses
// after 3 seconds) are the consumer's concern; the service only accumulates
// and serves these.
type Notification struct {
	ID      int64            `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

type NotificationListResponse struct {
	Success bool           `json:"success"`
	Data    []Notification `json:"data"`
}
