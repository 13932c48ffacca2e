package reports

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/payment"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/internal/review"
)

type Repository interface {
	EventKPIs(ctx context.Context, eventID uint) (*EventKPIs, error)
	AttendeeRows(ctx context.Context, eventID uint) ([]AttendeeReportRow, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) EventKPIs(ctx context.Context, eventID uint) (*EventKPIs, error) {
	var e event.Event
	if err := r.db.WithContext(ctx).First(&e, eventID).Error; err != nil {
		return nil, err
	}

	kpis := &EventKPIs{
		EventID:   e.ID,
		EventName: e.EventName,
		Capacity:  e.Capacity,
	}
	db := r.db.WithContext(ctx)

	if err := db.Model(&registration.Registration{}).
		Where("event_id = ?", eventID).
		Count(&kpis.RegisteredCount).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&registration.Attendance{}).
		Where("event_id = ? AND status = ?", eventID, registration.AttendancePresent).
		Count(&kpis.CheckedInCount).Error; err != nil {
		return nil, err
	}

	if kpis.RegisteredCount > 0 {
		kpis.AttendanceRate = float64(kpis.CheckedInCount) / float64(kpis.RegisteredCount)
	}
	if e.Capacity > 0 {
		kpis.FillRate = float64(kpis.RegisteredCount) / float64(e.Capacity)
	}

	if err := db.Model(&review.Review{}).
		Where("event_id = ?", eventID).
		Count(&kpis.ReviewCount).Error; err != nil {
		return nil, err
	}
	if kpis.ReviewCount > 0 {
		row := db.Model(&review.Review{}).
			Select("AVG(rating)").
			Where("event_id = ?", eventID).
			Row()
		if err := row.Scan(&kpis.AverageRating); err != nil {
			return nil, err
		}
	}

	if err := db.Model(&payment.Payment{}).
		Where("event_id = ? AND status = ?", eventID, payment.StatusSuccess).
		Count(&kpis.PaidCount).Error; err != nil {
		return nil, err
	}
	if kpis.PaidCount > 0 {
		row := db.Model(&payment.Payment{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("event_id = ? AND status = ?", eventID, payment.StatusSuccess).
			Row()
		if err := row.Scan(&kpis.CollectedRevenue); err != nil {
			return nil, err
		}
	}

	return kpis, nil
}

func (r *repository) AttendeeRows(ctx context.Context, eventID uint) ([]AttendeeReportRow, error) {
	var rows []AttendeeReportRow
	err := r.db.WithContext(ctx).
		Table("registrations r").
		Select(`
			r.id as registration_id, r.payment_status, r.created_at as registered_at,
			u.full_name, u.email,
			pp.institution, pp.matric_number,
			a.status as attendance_status, a.checked_in_at
		`).
		Joins("JOIN users u ON r.user_id = u.id").
		Joins("LEFT JOIN participant_profiles pp ON pp.user_id = u.id").
		Joins("LEFT JOIN attendances a ON a.registration_id = r.id").
		Where("r.event_id = ?", eventID).
		Order("u.full_name ASC").
		Scan(&rows).Error
	return rows, err
}
