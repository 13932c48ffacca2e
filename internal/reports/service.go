package reports

import (
	"context"
	"errors"

	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

// Service builds organizer analytics and exports. All event-scoped calls
// enforce ownership: organizers see their own events, admins see all.
type Service struct {
	Repo     Repository
	EventSvc *event.Service
	RegRepo  registration.Repository
	QRSvc    qrcode.Service
	Exporter AttendeeExporter
}

func NewService(repo Repository, eventSvc *event.Service, regRepo registration.Repository, qrSvc qrcode.Service, exporter AttendeeExporter) *Service {
	return &Service{
		Repo:     repo,
		EventSvc: eventSvc,
		RegRepo:  regRepo,
		QRSvc:    qrSvc,
		Exporter: exporter,
	}
}

func (s *Service) EventKPIs(ctx context.Context, eventID uint, ac middleware.AccessContext) (*EventKPIs, error) {
	if _, err := s.ownedEvent(ctx, eventID, ac); err != nil {
		return nil, err
	}
	return s.Repo.EventKPIs(ctx, eventID)
}

func (s *Service) ExportAttendees(ctx context.Context, eventID uint, format string, ac middleware.AccessContext) ([]byte, string, string, error) {
	e, err := s.ownedEvent(ctx, eventID, ac)
	if err != nil {
		return nil, "", "", err
	}

	rows, err := s.Repo.AttendeeRows(ctx, eventID)
	if err != nil {
		return nil, "", "", err
	}

	return s.Exporter.Export(format, e.EventName, rows)
}

// Ticket renders the caller's own registration ticket as PDF
func (s *Service) Ticket(ctx context.Context, registrationID uint, ac middleware.AccessContext) ([]byte, error) {
	reg, err := s.RegRepo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != ac.UserID && !ac.IsAdmin() {
		return nil, errors.New("registration does not belong to caller")
	}

	e, err := s.EventSvc.GetEvent(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}

	qrImage := ""
	if code, err := s.QRSvc.GetByEventID(ctx, e.ID); err == nil {
		qrImage = code.ImagePath
	}

	return s.Exporter.Ticket(TicketData{
		RegistrationID:  reg.ID,
		EventName:       e.EventName,
		ParticipantName: ac.FullName,
		Email:           ac.Email,
		StartDate:       e.StartDate,
		Address:         e.Address,
		Price:           e.Price,
		PaymentStatus:   reg.PaymentStatus,
		QRImagePath:     qrImage,
	})
}

func (s *Service) ownedEvent(ctx context.Context, eventID uint, ac middleware.AccessContext) (*event.Event, error) {
	e, err := s.EventSvc.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.OrganizerID != ac.UserID && !ac.IsAdmin() {
		return nil, event.ErrNotOwner
	}
	return e, nil
}
