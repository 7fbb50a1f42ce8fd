package models

import "time"

// NotificationType drives how a client styles a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
)

// Notification is a user-facing alert: seeded announcements or delay alerts
// raised by the live refresh.
type Notification struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Type        NotificationType `json:"type"`
	Line        Line             `json:"line,omitempty"`
	TrainNumber string           `json:"trainNumber,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ServiceUpdate is a static operator announcement
type ServiceUpdate struct {
	ID       int    `json:"id"`
	Time     string `json:"time"`
	Line     Line   `json:"line"`
	Message  string `json:"message"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}
