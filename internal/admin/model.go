package admin

import "time"

// PendingOrganizer is the validation-queue view of an organizer awaiting
// a decision.
type PendingOrganizer struct {
	UserID       uint      `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Organization string    `json:"organization"`
	Description  string    `json:"description"`
	Verified     string    `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type ValidateRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

// PlatformAnalytics feeds the admin analytics charts.
type PlatformAnalytics struct {
	RegistrationsPerMonth    []MonthlyCount    `json:"registrations_per_month"`
	TopEvents                []TopEvent        `json:"top_events"`
	ParticipantsByUniversity []InstitutionRank `json:"participants_by_university"`
}

type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

type TopEvent struct {
	EventID       uint   `json:"event_id"`
	EventName     string `json:"event_name"`
	Registrations int64  `json:"registrations"`
}

type InstitutionRank struct {
	Institution string `json:"institution"`
	Count       int64  `json:"count"`
}

// DashboardStats are the admin landing-page counters
type DashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	TotalOrganizers    int64   `json:"total_organizers"`
	PendingOrganizers  int64   `json:"pending_organizers"`
	TotalEvents        int64   `json:"total_events"`
	PendingEvents      int64   `json:"pending_events"`
	TotalRegistrations int64   `json:"total_registrations"`
	TotalCheckedIn     int64   `json:"total_checked_in"`
	TotalRevenue       float64 `json:"total_revenue"`
}
