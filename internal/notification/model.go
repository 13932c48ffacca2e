package notification

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationLog records each outbound message for troubleshooting
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`   // sender or system actor
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, push, inapp
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"` // email/token array
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// InAppNotification - per-user, in-app bell notifications
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	EventID   *uint     `gorm:"index" json:"event_id,omitempty"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // event, registration, validation, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

// ValidationDecision is the payload published to Kafka when an admin
// decides on an organizer or event.
type ValidationDecision struct {
	Kind          string `json:"kind"` // organizer, event
	SubjectID     uint   `json:"subject_id"`
	SubjectName   string `json:"subject_name"`
	RecipientID   uint   `json:"recipient_id"`
	RecipientMail string `json:"recipient_mail"`
	RecipientName string `json:"recipient_name"`
	Accepted      bool   `json:"accepted"`
	Reason        string `json:"reason,omitempty"`
}
