package event

import (
	"context"

	"gorm.io/gorm"
)

// Repository wraps event table access
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListPublic returns accepted events with filters and pagination
func (r *Repository) ListPublic(ctx context.Context, filter EventFilter) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.WithContext(ctx).Model(&Event{}).Where("status = ?", StatusAccepted)

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.UniversityID != 0 {
		query = query.Where("university_id = ?", filter.UniversityID)
	}
	if filter.Search != "" {
		query = query.Where("event_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.FromDate != nil {
		query = query.Where("start_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("start_date <= ?", *filter.ToDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	err := query.Order("start_date ASC").Limit(filter.Limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// ListByOrganizer returns all of an organizer's events, any status
func (r *Repository) ListByOrganizer(ctx context.Context, organizerID uint) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// ListPendingValidation returns events awaiting an admin decision
func (r *Repository) ListPendingValidation(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

// CountRegistrations counts confirmed registrations for one event
func (r *Repository) CountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("registrations").
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *Repository) SetRegistrationOpen(ctx context.Context, eventID uint, open bool) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("registration_open", open).Error
}

func (r *Repository) SetReviewOpen(ctx context.Context, eventID uint, open bool) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("review_open", open).Error
}

func (r *Repository) SetPoster(ctx context.Context, eventID uint, poster string) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("poster", poster).Error
}

// SetValidation records an admin decision on the event
func (r *Repository) SetValidation(ctx context.Context, eventID uint, status, reason string) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"status":         status,
			"decline_reason": reason,
		}).Error
}
