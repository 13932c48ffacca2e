package registration

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AvalonleFae/ezevent/internal/event"
)

var (
	// ErrAlreadyRegistered means this user already holds a registration
	// for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrEventClosed means the organizer switched registration off.
	ErrEventClosed = errors.New("registration is closed for this event")
	// ErrEventFull means every seat is taken.
	ErrEventFull = errors.New("event is full")
	// ErrNotRegistered means no registration exists for (event, user).
	ErrNotRegistered = errors.New("no registration found for this event and user")
	// ErrAttendanceMissing means the registration exists but its attendance
	// record was never scaffolded. This is a data integrity failure.
	ErrAttendanceMissing = errors.New("attendance record missing for registration")
)

type Repository interface {
	// CreateRegistered inserts a registration and its attendance scaffold,
	// re-checking the capacity gate inside a transaction that locks the
	// event row. The gate decision is made at commit time, not earlier.
	CreateRegistered(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error)

	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Registration, error)
	FindByID(ctx context.Context, id uint) (*Registration, error)
	ListByUser(ctx context.Context, userID uint) ([]RegistrationDetail, error)
	ListByEvent(ctx context.Context, eventID uint) ([]Registration, error)

	// MarkPresent flips the attendance to present exactly once.
	// Returns alreadyCheckedIn=true (and no error) when the record was
	// present before the call; checkedInAt is always the stored first
	// check-in time.
	MarkPresent(ctx context.Context, registrationID uint, at time.Time) (checkedInAt time.Time, alreadyCheckedIn bool, err error)

	SetPaymentStatus(ctx context.Context, registrationID uint, status string) error
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	CountPresentByEvent(ctx context.Context, eventID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateRegistered(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error) {
	var reg *Registration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row so concurrent registrations serialize here
		var e event.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&e, eventID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&Registration{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}

		switch event.CanRegister(&e, count) {
		case event.ClosedByOrganizer:
			return ErrEventClosed
		case event.Full:
			return ErrEventFull
		}

		reg = &Registration{
			EventID:       eventID,
			UserID:        userID,
			PaymentStatus: paymentStatus,
		}
		if err := tx.Create(reg).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRegistered
			}
			return err
		}

		attendance := &Attendance{
			RegistrationID: reg.ID,
			EventID:        eventID,
			UserID:         userID,
			Status:         AttendanceAbsent,
		}
		return tx.Create(attendance).Error
	})
	if err != nil {
		return nil, err
	}

	return reg, nil
}

func (r *repository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Registration, error) {
	var reg Registration
	err := r.db.WithContext(ctx).
		Preload("Attendance").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	return &reg, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Registration, error) {
	var reg Registration
	err := r.db.WithContext(ctx).Preload("Attendance").First(&reg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	return &reg, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]RegistrationDetail, error) {
	var out []RegistrationDetail
	err := r.db.WithContext(ctx).
		Table("registrations r").
		Select(`
			r.id, r.event_id, r.payment_status, r.created_at,
			e.event_name, e.start_date, e.end_date, e.address, e.price,
			a.status as attendance_status, a.checked_in_at
		`).
		Joins("JOIN events e ON r.event_id = e.id").
		Joins("LEFT JOIN attendances a ON a.registration_id = r.id").
		Where("r.user_id = ?", userID).
		Order("e.start_date DESC").
		Scan(&out).Error
	return out, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var regs []Registration
	err := r.db.WithContext(ctx).
		Preload("Attendance").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *repository) MarkPresent(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
	// Conditional update keyed on status keeps the first check-in's
	// timestamp when two scans race.
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("registration_id = ? AND status = ?", registrationID, AttendanceAbsent).
		Updates(map[string]interface{}{
			"status":        AttendancePresent,
			"checked_in_at": at,
		})
	if res.Error != nil {
		return time.Time{}, false, res.Error
	}
	if res.RowsAffected > 0 {
		return at, false, nil
	}

	// No rows: either already present, or the scaffold is missing.
	// Read the row back so the duplicate reports the original timestamp.
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, ErrAttendanceMissing
	}
	if err != nil {
		return time.Time{}, false, err
	}
	if a.CheckedInAt != nil {
		return *a.CheckedInAt, true, nil
	}
	return time.Time{}, true, nil
}

func (r *repository) SetPaymentStatus(ctx context.Context, registrationID uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ?", registrationID).
		Update("payment_status", status).Error
}

func (r *repository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountPresentByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("event_id = ? AND status = ?", eventID, AttendancePresent).
		Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
