package review

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	Exists(ctx context.Context, eventID, participantID uint) (bool, error)
	ListByEvent(ctx context.Context, eventID uint) ([]ReviewWithAuthor, error)
	Summary(ctx context.Context, eventID uint) (*RatingSummary, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *repository) Exists(ctx context.Context, eventID, participantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("event_id = ? AND participant_id = ?", eventID, participantID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]ReviewWithAuthor, error) {
	var out []ReviewWithAuthor
	err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select(`
			rv.id, rv.event_id, rv.rating, rv.message, rv.recommend,
			rv.objective, rv.created_at,
			u.full_name as author
		`).
		Joins("JOIN users u ON rv.participant_id = u.id").
		Where("rv.event_id = ?", eventID).
		Order("rv.created_at DESC").
		Scan(&out).Error
	return out, err
}

func (r *repository) Summary(ctx context.Context, eventID uint) (*RatingSummary, error) {
	var summary RatingSummary
	summary.EventID = eventID

	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Where("event_id = ?", eventID).
		Count(&summary.ReviewCount).Error
	if err != nil {
		return nil, err
	}

	if summary.ReviewCount > 0 {
		row := r.db.WithContext(ctx).
			Model(&Review{}).
			Select("AVG(rating) as avg_rating").
			Where("event_id = ?", eventID).
			Row()
		if err := row.Scan(&summary.AverageRating); err != nil {
			return nil, err
		}

		err = r.db.WithContext(ctx).
			Model(&Review{}).
			Where("event_id = ? AND recommend = ?", eventID, true).
			Count(&summary.RecommendCount).Error
		if err != nil {
			return nil, err
		}
	}

	return &summary, nil
}
