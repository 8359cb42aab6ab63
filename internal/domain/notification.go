package domain

// NotificationType classifies an in-app notification.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

// Notification is a short-lived in-app signal. It is not persisted; the
// notify center expires it after a fixed display window.
type Notification struct {
	ID      int64            `json:"id"`
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}
