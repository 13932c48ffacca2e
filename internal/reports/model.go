package reports

import "time"

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// EventKPIs are the organizer dashboard numbers for one event
type EventKPIs struct {
	EventID          uint    `json:"event_id"`
	EventName        string  `json:"event_name"`
	Capacity         int     `json:"capacity"`
	RegisteredCount  int64   `json:"registered_count"`
	CheckedInCount   int64   `json:"checked_in_count"`
	AttendanceRate   float64 `json:"attendance_rate"`
	FillRate         float64 `json:"fill_rate"`
	ReviewCount      int64   `json:"review_count"`
	AverageRating    float64 `json:"average_rating"`
	PaidCount        int64   `json:"paid_count"`
	CollectedRevenue float64 `json:"collected_revenue"`
}

// AttendeeReportRow is one line of the attendee export
type AttendeeReportRow struct {
	RegistrationID   uint       `json:"registration_id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Institution      string     `json:"institution"`
	MatricNumber     string     `json:"matric_number"`
	PaymentStatus    string     `json:"payment_status"`
	AttendanceStatus string     `json:"attendance_status"`
	CheckedInAt      *time.Time `json:"checked_in_at,omitempty"`
	RegisteredAt     time.Time  `json:"registered_at"`
}

// TicketData feeds the printable registration ticket
type TicketData struct {
	RegistrationID  uint
	EventName       string
	ParticipantName string
	Email           string
	StartDate       time.Time
	Address         string
	Price           float64
	PaymentStatus   string
	QRImagePath     string
}
