package event

import (
	"time"
)

// Event lifecycle states. New events await admin review.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrganizerID  uint    `gorm:"column:organizer_id;not null;index" json:"organizer_id"`
	EventName    string  `gorm:"column:event_name;type:varchar(255);not null" json:"event_name"`
	Description  string  `gorm:"type:text" json:"description"`
	CategoryID   uint    `gorm:"column:category_id;index" json:"category_id"`
	UniversityID uint    `gorm:"column:university_id;index" json:"university_id"`
	FacultyID    uint    `gorm:"column:faculty_id" json:"faculty_id"`
	Address      string  `gorm:"type:text" json:"address"`
	Price        float64 `gorm:"default:0" json:"price"`

	// Capacity <= 0 means unlimited
	Capacity int `gorm:"column:capacity;default:0" json:"capacity"`

	StartDate time.Time `gorm:"column:start_date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"column:end_date;not null" json:"end_date"`

	Status                   string `gorm:"size:20;default:pending;index" json:"status"`
	RegistrationOpen         bool   `gorm:"column:registration_open;default:true" json:"registration_open"`
	ReviewOpen               bool   `gorm:"column:review_open;default:false" json:"review_open"`
	DeclineReason            string `gorm:"column:decline_reason;size:500" json:"decline_reason,omitempty"`
	AfterRegistrationMessage string `gorm:"column:after_registration_message;type:text" json:"after_registration_message"`
	Poster                   string `gorm:"size:255" json:"poster"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	RegisteredCount int64 `gorm:"-" json:"registered_count"`
}

func (Event) TableName() string {
	return "events"
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	EventName    string  `json:"event_name" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	CategoryID   uint    `json:"category_id" binding:"required"`
	UniversityID uint    `json:"university_id"`
	FacultyID    uint    `json:"faculty_id"`
	Address      string  `json:"address" binding:"required"`
	Price        float64 `json:"price"`
	Capacity     int     `json:"capacity"`
	StartDate    string  `json:"start_date" binding:"required"` // "2006-01-02T15:04"
	EndDate      string  `json:"end_date" binding:"required"`

	AfterRegistrationMessage string `json:"after_registration_message"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	ID           uint    `json:"-"`
	EventName    string  `json:"event_name" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	CategoryID   uint    `json:"category_id" binding:"required"`
	UniversityID uint    `json:"university_id"`
	FacultyID    uint    `json:"faculty_id"`
	Address      string  `json:"address" binding:"required"`
	Price        float64 `json:"price"`
	Capacity     int     `json:"capacity"`
	StartDate    string  `json:"start_date" binding:"required"`
	EndDate      string  `json:"end_date" binding:"required"`

	AfterRegistrationMessage string `json:"after_registration_message"`
}

// EventFilter narrows the public listing
type EventFilter struct {
	CategoryID   uint
	UniversityID uint
	Search       string
	FromDate     *time.Time
	ToDate       *time.Time
	Page         int
	Limit        int
}
