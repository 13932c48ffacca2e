package registration

import "time"

// Registration links a participant to an event. The composite unique index
// makes double-registration a constraint violation even under races.
type Registration struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EventID uint `gorm:"column:event_id;not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID  uint `gorm:"column:user_id;not null;uniqueIndex:idx_event_user" json:"user_id"`

	PaymentStatus string `gorm:"column:payment_status;size:20;default:none" json:"payment_status"` // none/pending/paid

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attendance *Attendance `gorm:"foreignKey:RegistrationID" json:"attendance,omitempty"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Attendance states
const (
	AttendanceAbsent  = "absent"
	AttendancePresent = "present"
)

// Attendance is the per-registration check-in record. It is scaffolded at
// registration time; check-in only flips it to present.
type Attendance struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RegistrationID uint       `gorm:"column:registration_id;uniqueIndex;not null" json:"registration_id"`
	EventID        uint       `gorm:"column:event_id;index;not null" json:"event_id"`
	UserID         uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	Status         string     `gorm:"size:20;default:absent;index" json:"status"`
	CheckedInAt    *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// RegistrationDetail is the participant-facing view with event info joined in
type RegistrationDetail struct {
	ID               uint       `json:"id"`
	EventID          uint       `json:"event_id"`
	EventName        string     `json:"event_name"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	Address          string     `json:"address"`
	Price            float64    `json:"price"`
	PaymentStatus    string     `json:"payment_status"`
	AttendanceStatus string     `json:"attendance_status"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
