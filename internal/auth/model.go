package auth

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	FullName             string         `gorm:"column:full_name;size:100;not null" json:"name"`
	Email                string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone                string         `gorm:"size:20" json:"phone"`
	PasswordHash         string         `gorm:"column:password_hash;size:255;not null" json:"-"` // stored hashed, hidden from JSON
	RoleID               uint           `gorm:"column:role_id" json:"-"`
	Role                 UserRole       `gorm:"foreignKey:RoleID" json:"role"`
	Status               string         `gorm:"default:active" json:"status"`
	EmailVerified        bool           `gorm:"column:email_verified;default:false" json:"email_verified"`
	EmailVerifiedAt      *time.Time     `gorm:"column:email_verified_at" json:"email_verified_at"`
	ForgotPasswordToken  string         `gorm:"column:forgot_password_token" json:"-"`
	ForgotPasswordExpiry *time.Time     `gorm:"column:forgot_password_expiry" json:"-"`
	FCMToken             string         `gorm:"column:fcm_token;size:512" json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

type UserRole struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	RoleName            string `gorm:"column:role_name;size:50;uniqueIndex;not null" json:"role_name"`
	Description         string `gorm:"size:255" json:"description"`
	CanRegisterPublicly bool   `gorm:"column:can_register_publicly;default:false" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// Organizer verification states
const (
	VerificationPending  = "pending"
	VerificationAccepted = "accepted"
	VerificationDeclined = "declined"
)

// OrganizerProfile holds organizer-only fields. Verified gates event
// creation: an organizer may not publish events until an admin accepts them.
type OrganizerProfile struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Organization        string     `gorm:"size:150" json:"organization"`
	Description         string     `gorm:"size:500" json:"description"`
	Verified            string     `gorm:"size:20;default:pending;index" json:"verified"` // pending/accepted/declined
	DeclineReason       string     `gorm:"size:500" json:"decline_reason,omitempty"`
	ValidationTimestamp *time.Time `gorm:"column:validation_timestamp" json:"validation_timestamp,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (OrganizerProfile) TableName() string {
	return "organizer_profiles"
}

// ParticipantProfile holds student-specific fields used on tickets and reports
type ParticipantProfile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Institution  string    `gorm:"size:150" json:"institution"`
	MatricNumber string    `gorm:"column:matric_number;size:50" json:"matric_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ParticipantProfile) TableName() string {
	return "participant_profiles"
}
