package admin

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/payment"
	"github.com/AvalonleFae/ezevent/internal/registration"
)

type Repository interface {
	ListOrganizers(ctx context.Context, status, search string) ([]PendingOrganizer, error)
	GetOrganizer(ctx context.Context, userID uint) (*auth.User, *auth.OrganizerProfile, error)
	SetOrganizerVerification(ctx context.Context, userID uint, verified, reason string, at time.Time) error
	Stats(ctx context.Context) (*DashboardStats, error)
	Analytics(ctx context.Context) (*PlatformAnalytics, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) ListOrganizers(ctx context.Context, status, search string) ([]PendingOrganizer, error) {
	var out []PendingOrganizer
	q := r.db.WithContext(ctx).
		Table("organizer_profiles op").
		Select(`
			op.user_id, op.organization, op.description, op.verified, op.created_at,
			u.full_name, u.email, u.phone
		`).
		Joins("JOIN users u ON op.user_id = u.id").
		Order("op.created_at ASC")
	if status != "" {
		q = q.Where("op.verified = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("u.full_name ILIKE ? OR u.email ILIKE ? OR op.organization ILIKE ?", like, like, like)
	}
	err := q.Scan(&out).Error
	return out, err
}

func (r *repository) GetOrganizer(ctx context.Context, userID uint) (*auth.User, *auth.OrganizerProfile, error) {
	var user auth.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, userID).Error; err != nil {
		return nil, nil, err
	}

	var profile auth.OrganizerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, nil, err
	}

	return &user, &profile, nil
}

func (r *repository) SetOrganizerVerification(ctx context.Context, userID uint, verified, reason string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&auth.OrganizerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"verified":             verified,
			"decline_reason":       reason,
			"validation_timestamp": at,
		}).Error
}

func (r *repository) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&auth.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&auth.OrganizerProfile{}).Count(&stats.TotalOrganizers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&auth.OrganizerProfile{}).
		Where("verified = ?", auth.VerificationPending).
		Count(&stats.PendingOrganizers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&event.Event{}).
		Where("status = ?", event.StatusPending).
		Count(&stats.PendingEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&registration.Registration{}).Count(&stats.TotalRegistrations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&registration.Attendance{}).
		Where("status = ?", registration.AttendancePresent).
		Count(&stats.TotalCheckedIn).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&payment.Payment{}).
		Where("status = ?", payment.StatusSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *repository) Analytics(ctx context.Context) (*PlatformAnalytics, error) {
	var out PlatformAnalytics
	db := r.db.WithContext(ctx)

	if err := db.Table("registrations").
		Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
		Group("month").
		Order("month ASC").
		Scan(&out.RegistrationsPerMonth).Error; err != nil {
		return nil, err
	}

	if err := db.Table("registrations r").
		Select("r.event_id, e.event_name, COUNT(*) AS registrations").
		Joins("JOIN events e ON r.event_id = e.id").
		Group("r.event_id, e.event_name").
		Order("registrations DESC").
		Limit(10).
		Scan(&out.TopEvents).Error; err != nil {
		return nil, err
	}

	if err := db.Table("participant_profiles").
		Select("institution, COUNT(*) AS count").
		Where("institution <> ''").
		Group("institution").
		Order("count DESC").
		Scan(&out.ParticipantsByUniversity).Error; err != nil {
		return nil, err
	}

	return &out, nil
}
