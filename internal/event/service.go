package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/middleware"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("event does not belong to this organizer")
)

const dateLayout = "2006-01-02T15:04"

// Service wraps business logic for events
type Service struct {
	Repo     *Repository
	AuthSvc  auth.Service
	QRSvc    qrcode.Service
	AuditSvc auditlog.Service
}

func NewService(r *Repository, authSvc auth.Service, qrSvc qrcode.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuthSvc:  authSvc,
		QRSvc:    qrSvc,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
// Only verified organizers may create events. New events start pending and
// become visible to participants once an admin accepts them.
func (s *Service) CreateEvent(ctx context.Context, req *CreateEventRequest, ac middleware.AccessContext, ip string) (*Event, error) {
	if err := s.AuthSvc.RequireVerifiedOrganizer(ac.UserID); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{
				"event_name": req.EventName,
				"error":      "organizer not verified",
			}, ip, "failure")
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date format. Use YYYY-MM-DDTHH:MM")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date format. Use YYYY-MM-DDTHH:MM")
	}
	if !startDate.After(time.Now()) {
		return nil, errors.New("start_date must be in the future")
	}
	if !endDate.After(startDate) {
		return nil, errors.New("end_date must be after start_date")
	}
	if req.Capacity < 0 {
		return nil, errors.New("capacity must not be negative")
	}

	e := &Event{
		OrganizerID:              ac.UserID,
		EventName:                req.EventName,
		Description:              req.Description,
		CategoryID:               req.CategoryID,
		UniversityID:             req.UniversityID,
		FacultyID:                req.FacultyID,
		Address:                  req.Address,
		Price:                    req.Price,
		Capacity:                 req.Capacity,
		StartDate:                startDate,
		EndDate:                  endDate,
		Status:                   StatusPending,
		RegistrationOpen:         true,
		AfterRegistrationMessage: req.AfterRegistrationMessage,
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "EVENT_CREATED",
			map[string]interface{}{
				"event_name": req.EventName,
				"error":      err.Error(),
			}, ip, "failure")
		return nil, err
	}

	// Mint the scannable code up front so staff can print badges before
	// the event is even accepted.
	if _, err := s.QRSvc.GenerateForEvent(ctx, e.ID); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, &e.ID, "EVENT_QR_GENERATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, &e.ID, "EVENT_CREATED",
		map[string]interface{}{"event_name": e.EventName}, ip, "success")

	return e, nil
}

// ===========================
// ✏️ Update Event
func (s *Service) UpdateEvent(ctx context.Context, req *UpdateEventRequest, ac middleware.AccessContext, ip string) (*Event, error) {
	e, err := s.getOwned(ctx, req.ID, ac)
	if err != nil {
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, errors.New("invalid start_date format. Use YYYY-MM-DDTHH:MM")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, errors.New("invalid end_date format. Use YYYY-MM-DDTHH:MM")
	}

	e.EventName = req.EventName
	e.Description = req.Description
	e.CategoryID = req.CategoryID
	e.UniversityID = req.UniversityID
	e.FacultyID = req.FacultyID
	e.Address = req.Address
	e.Price = req.Price
	e.Capacity = req.Capacity
	e.StartDate = startDate
	e.EndDate = endDate
	e.AfterRegistrationMessage = req.AfterRegistrationMessage

	if err := s.Repo.Update(ctx, e); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, &e.ID, "EVENT_UPDATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, &e.ID, "EVENT_UPDATED",
		map[string]interface{}{"event_name": e.EventName}, ip, "success")

	return e, nil
}

// ===========================
// 🔀 Registration / review toggles
func (s *Service) SetRegistrationOpen(ctx context.Context, eventID uint, open bool, ac middleware.AccessContext, ip string) error {
	if _, err := s.getOwned(ctx, eventID, ac); err != nil {
		return err
	}
	if err := s.Repo.SetRegistrationOpen(ctx, eventID, open); err != nil {
		return err
	}
	s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_REGISTRATION_TOGGLED",
		map[string]interface{}{"open": open}, ip, "success")
	return nil
}

func (s *Service) SetReviewOpen(ctx context.Context, eventID uint, open bool, ac middleware.AccessContext, ip string) error {
	if _, err := s.getOwned(ctx, eventID, ac); err != nil {
		return err
	}
	if err := s.Repo.SetReviewOpen(ctx, eventID, open); err != nil {
		return err
	}
	s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_REVIEW_TOGGLED",
		map[string]interface{}{"open": open}, ip, "success")
	return nil
}

func (s *Service) SetPoster(ctx context.Context, eventID uint, poster string, ac middleware.AccessContext) error {
	if _, err := s.getOwned(ctx, eventID, ac); err != nil {
		return err
	}
	return s.Repo.SetPoster(ctx, eventID, poster)
}

// ===========================
// 🔍 Queries
func (s *Service) GetEvent(ctx context.Context, id uint) (*Event, error) {
	e, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	count, err := s.Repo.CountRegistrations(ctx, e.ID)
	if err == nil {
		e.RegisteredCount = count
	}
	return e, nil
}

func (s *Service) ListPublic(ctx context.Context, filter EventFilter) ([]Event, int64, error) {
	events, total, err := s.Repo.ListPublic(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range events {
		if count, err := s.Repo.CountRegistrations(ctx, events[i].ID); err == nil {
			events[i].RegisteredCount = count
		}
	}
	return events, total, nil
}

func (s *Service) ListMine(ctx context.Context, ac middleware.AccessContext) ([]Event, error) {
	events, err := s.Repo.ListByOrganizer(ctx, ac.UserID)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if count, err := s.Repo.CountRegistrations(ctx, events[i].ID); err == nil {
			events[i].RegisteredCount = count
		}
	}
	return events, nil
}

// Availability reports whether a participant could register right now
func (s *Service) Availability(ctx context.Context, eventID uint) (Availability, *Event, error) {
	e, err := s.Repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrEventNotFound
		}
		return "", nil, err
	}
	count, err := s.Repo.CountRegistrations(ctx, eventID)
	if err != nil {
		return "", nil, err
	}
	return CanRegister(e, count), e, nil
}

func (s *Service) getOwned(ctx context.Context, eventID uint, ac middleware.AccessContext) (*Event, error) {
	e, err := s.Repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if e.OrganizerID != ac.UserID && !ac.IsAdmin() {
		return nil, ErrNotOwner
	}
	return e, nil
}
