package models

import "time"

// Notification types
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
	NotificationMention = "mention"
	NotificationReply   = "reply"
)

// Notification represents a user notification (PostgreSQL). Notifications
// are best-effort side effects: the actions producing them never depend on
// their creation succeeding.
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   uint      `json:"recipient_id" gorm:"index"`
	ActorID       uint      `json:"actor_id" gorm:"index"`
	Type          string    `json:"type" gorm:"size:30;index"` // like, comment, follow, message, mention, reply
	ReferenceID   string    `json:"reference_id,omitempty"`
	ReferenceType string    `json:"reference_type,omitempty" gorm:"size:20"` // post, comment, user, message
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
