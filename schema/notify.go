package schema

// DefaultNotificationType is used when a broadcast omits the type.
const DefaultNotificationType = "announcement"

// NotificationResponse is one notification as the dashboard sees it.
type NotificationResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
	CreatedAt        string `json:"created_at"`
	IsRead           bool   `json:"is_read"`
}

// BroadcastNotificationRequest pushes a notification to all users.
type BroadcastNotificationRequest struct {
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type,omitempty"`
}

// Normalize fills the default notification type.
func (r BroadcastNotificationRequest) Normalize() BroadcastNotificationRequest {
	if r.NotificationType == "" {
		r.NotificationType = DefaultNotificationType
	}
	return r
}
