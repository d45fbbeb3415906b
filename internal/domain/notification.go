package domain

import "time"

// Notification statuses
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification is a per-user message shown in the dashboard inbox.
type Notification struct {
	ID        int64     `json:"id,string" form:"id"`             // Primary key ID
	UserID    int64     `gorm:"index" json:"user_id,string" form:"user_id"` // Recipient profile ID
	Title     string    `json:"title" form:"title"`
	Message   string    `json:"message" form:"message"`
	Type      string    `json:"type" form:"type"`     // info / warning / error / success
	Status    string    `json:"status" form:"status"` // unread / read
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (Notification) TableName() string {
	return "notifications"
}
