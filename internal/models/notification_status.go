package models

// Notification delivery statuses.
const (
	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"
)

// Contact is where a user's notifications go. Either field may be empty.
type Contact struct {
	Email string
	Phone string
}
