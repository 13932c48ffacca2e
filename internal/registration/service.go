package registration

import (
	"context"
	"errors"
	"time"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/middleware"
	"github.com/AvalonleFae/ezevent/utils"
)

var ErrEventNotAccepted = errors.New("event is not open for registration yet")

// EventCatalog is the slice of the event service registrations need.
type EventCatalog interface {
	GetEvent(ctx context.Context, id uint) (*event.Event, error)
}

// Service wraps registration business logic.
type Service struct {
	Repo     Repository
	EventSvc EventCatalog
	AuditSvc auditlog.Service
}

func NewService(repo Repository, eventSvc EventCatalog, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     repo,
		EventSvc: eventSvc,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 📝 Register
// The capacity/availability gate is applied inside the repository
// transaction, so the verdict here reflects the state at commit.
func (s *Service) Register(ctx context.Context, eventID uint, ac middleware.AccessContext, ip string) (*Registration, error) {
	e, err := s.EventSvc.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.Status != event.StatusAccepted {
		return nil, ErrEventNotAccepted
	}

	paymentStatus := "none"
	if e.Price > 0 {
		paymentStatus = "pending"
	}

	reg, err := s.Repo.CreateRegistered(ctx, eventID, ac.UserID, paymentStatus)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_REGISTERED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_REGISTERED",
		map[string]interface{}{"registration_id": reg.ID}, ip, "success")

	// Fire-and-forget confirmation; registration never fails on email
	go utils.SendRegistrationConfirmation(ac.Email, ac.FullName, e.EventName, e.AfterRegistrationMessage)

	return reg, nil
}

// ===========================
// 🔍 Lookups
func (s *Service) Lookup(ctx context.Context, eventID, userID uint) (*Registration, error) {
	return s.Repo.FindByEventAndUser(ctx, eventID, userID)
}

func (s *Service) ListMine(ctx context.Context, ac middleware.AccessContext) ([]RegistrationDetail, error) {
	return s.Repo.ListByUser(ctx, ac.UserID)
}

func (s *Service) ListForEvent(ctx context.Context, eventID uint, ac middleware.AccessContext) ([]Registration, error) {
	// Only the owning organizer or an admin may see the attendee list
	e, err := s.EventSvc.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.OrganizerID != ac.UserID && !ac.IsAdmin() {
		return nil, event.ErrNotOwner
	}
	return s.Repo.ListByEvent(ctx, eventID)
}

// ===========================
// ✅ Attendance
// MarkPresent is idempotent: the second mark reports alreadyCheckedIn
// and the first check-in's stored timestamp.
func (s *Service) MarkPresent(ctx context.Context, registrationID uint, ac middleware.AccessContext, ip string) (time.Time, bool, error) {
	checkedInAt, already, err := s.Repo.MarkPresent(ctx, registrationID, time.Now())
	if err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "ATTENDANCE_MARKED",
			map[string]interface{}{
				"registration_id": registrationID,
				"error":           err.Error(),
			}, ip, "failure")
		return time.Time{}, false, err
	}

	status := "success"
	details := map[string]interface{}{"registration_id": registrationID}
	if already {
		details["note"] = "already checked in"
	}
	s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "ATTENDANCE_MARKED", details, ip, status)

	return checkedInAt, already, nil
}
