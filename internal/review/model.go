package review

import "time"

// Review is a participant's feedback on an event they attended.
// One review per (event, participant).
type Review struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       uint      `gorm:"column:event_id;not null;uniqueIndex:idx_event_participant" json:"event_id"`
	ParticipantID uint      `gorm:"column:participant_id;not null;uniqueIndex:idx_event_participant" json:"participant_id"`
	Rating        int       `gorm:"not null" json:"rating"` // 1..5
	Message       string    `gorm:"type:text" json:"message"`
	Recommend     bool      `gorm:"default:false" json:"recommend"`
	Objective     string    `gorm:"size:255" json:"objective"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

type CreateReviewRequest struct {
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Message   string `json:"message"`
	Recommend bool   `json:"recommend"`
	Objective string `json:"objective"`
}

// ReviewWithAuthor joins in the reviewer name for public display
type ReviewWithAuthor struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Recommend bool      `json:"recommend"`
	Objective string    `json:"objective"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingSummary aggregates an event's reviews
type RatingSummary struct {
	EventID        uint    `json:"event_id"`
	ReviewCount    int64   `json:"review_count"`
	AverageRating  float64 `json:"average_rating"`
	RecommendCount int64   `json:"recommend_count"`
}
