package review

import (
	"context"
	"errors"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

var (
	ErrReviewClosed    = errors.New("reviews are closed for this event")
	ErrNotCheckedIn    = errors.New("only attendees who checked in may review")
	ErrAlreadyReviewed = errors.New("you have already reviewed this event")
)

// EventCatalog is the slice of the event service reviews need.
type EventCatalog interface {
	GetEvent(ctx context.Context, id uint) (*event.Event, error)
}

// Service gates reviews on attendance: only participants marked present
// can leave one, and only while the organizer keeps reviews open.
type Service struct {
	Repo     Repository
	RegRepo  registration.Repository
	EventSvc EventCatalog
	AuditSvc auditlog.Service
}

func NewService(repo Repository, regRepo registration.Repository, eventSvc EventCatalog, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     repo,
		RegRepo:  regRepo,
		EventSvc: eventSvc,
		AuditSvc: auditSvc,
	}
}

func (s *Service) CreateReview(ctx context.Context, eventID uint, req *CreateReviewRequest, ac middleware.AccessContext, ip string) (*Review, error) {
	e, err := s.EventSvc.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !e.ReviewOpen {
		return nil, ErrReviewClosed
	}

	reg, err := s.RegRepo.FindByEventAndUser(ctx, eventID, ac.UserID)
	if err != nil {
		return nil, err
	}
	if reg.Attendance == nil || reg.Attendance.Status != registration.AttendancePresent {
		return nil, ErrNotCheckedIn
	}

	exists, err := s.Repo.Exists(ctx, eventID, ac.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	rev := &Review{
		EventID:       eventID,
		ParticipantID: ac.UserID,
		Rating:        req.Rating,
		Message:       req.Message,
		Recommend:     req.Recommend,
		Objective:     req.Objective,
	}
	if err := s.Repo.Create(ctx, rev); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "REVIEW_CREATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "REVIEW_CREATED",
		map[string]interface{}{"rating": req.Rating}, ip, "success")

	return rev, nil
}

func (s *Service) ListByEvent(ctx context.Context, eventID uint) ([]ReviewWithAuthor, error) {
	return s.Repo.ListByEvent(ctx, eventID)
}

func (s *Service) Summary(ctx context.Context, eventID uint) (*RatingSummary, error) {
	return s.Repo.Summary(ctx, eventID)
}
