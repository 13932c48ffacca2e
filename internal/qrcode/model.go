package qrcode

import "time"

// QRCode is a scannable code row. Codes can exist before they are linked to
// an event (pre-printed badges), so EventID is nullable.
type QRCode struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"` // uuid
	EventID   *uint     `gorm:"column:event_id;index" json:"event_id"`
	ImagePath string    `gorm:"column:image_path;size:255" json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QRCode) TableName() string {
	return "qr_codes"
}

// ResolvedEvent is the check-in view of the event a code points at.
// Name falls back to the event id rendered as text when the event row
// is missing or carries no name.
type ResolvedEvent struct {
	EventID uint   `json:"event_id"`
	Name    string `json:"name"`
}
