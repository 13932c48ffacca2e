package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/notification"
	"github.com/AvalonleFae/ezevent/middleware"
	"github.com/AvalonleFae/ezevent/utils"
)

var (
	ErrAlreadyDecided = errors.New("a decision has already been recorded")
	ErrReasonRequired = errors.New("a reason is required when declining")
)

// Service hosts the admin validation workflows. Decisions are written to
// the database first; the notification fan-out goes through Kafka so a
// dead broker never blocks the decision itself.
type Service struct {
	Repo      Repository
	EventRepo *event.Repository
	AuditSvc  auditlog.Service
}

func NewService(repo Repository, eventRepo *event.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:      repo,
		EventRepo: eventRepo,
		AuditSvc:  auditSvc,
	}
}

// ===========================
// 🛂 Organizer validation
func (s *Service) ValidateOrganizer(ctx context.Context, organizerID uint, req ValidateRequest, ac middleware.AccessContext, ip string) error {
	user, profile, err := s.Repo.GetOrganizer(ctx, organizerID)
	if err != nil {
		return errors.New("organizer not found")
	}
	if profile.Verified != auth.VerificationPending {
		return ErrAlreadyDecided
	}
	if !req.Accept && req.Reason == "" {
		return ErrReasonRequired
	}

	verified := auth.VerificationAccepted
	if !req.Accept {
		verified = auth.VerificationDeclined
	}

	now := time.Now()
	if err := s.Repo.SetOrganizerVerification(ctx, organizerID, verified, req.Reason, now); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "ORGANIZER_VALIDATED",
			map[string]interface{}{
				"organizer_id": organizerID,
				"error":        err.Error(),
			}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, nil, "ORGANIZER_VALIDATED",
		map[string]interface{}{
			"organizer_id": organizerID,
			"accepted":     req.Accept,
			"reason":       req.Reason,
		}, ip, "success")

	s.publishDecision(ctx, notification.ValidationDecision{
		Kind:          "organizer",
		SubjectID:     organizerID,
		SubjectName:   user.FullName,
		RecipientID:   user.ID,
		RecipientMail: user.Email,
		RecipientName: user.FullName,
		Accepted:      req.Accept,
		Reason:        req.Reason,
	})

	return nil
}

// ===========================
// 🛂 Event validation
func (s *Service) ValidateEvent(ctx context.Context, eventID uint, req ValidateRequest, ac middleware.AccessContext, ip string) error {
	e, err := s.EventRepo.FindByID(ctx, eventID)
	if err != nil {
		return event.ErrEventNotFound
	}
	if e.Status != event.StatusPending {
		return ErrAlreadyDecided
	}
	if !req.Accept && req.Reason == "" {
		return ErrReasonRequired
	}

	status := event.StatusAccepted
	if !req.Accept {
		status = event.StatusDeclined
	}

	if err := s.EventRepo.SetValidation(ctx, eventID, status, req.Reason); err != nil {
		s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_VALIDATED",
			map[string]interface{}{"error": err.Error()}, ip, "failure")
		return err
	}

	s.AuditSvc.LogAction(ctx, &ac.UserID, &eventID, "EVENT_VALIDATED",
		map[string]interface{}{
			"accepted": req.Accept,
			"reason":   req.Reason,
		}, ip, "success")

	organizer, _, err := s.Repo.GetOrganizer(ctx, e.OrganizerID)
	if err != nil {
		log.Printf("⚠️ Event %d validated but organizer %d lookup failed: %v", eventID, e.OrganizerID, err)
		return nil
	}

	s.publishDecision(ctx, notification.ValidationDecision{
		Kind:          "event",
		SubjectID:     eventID,
		SubjectName:   e.EventName,
		RecipientID:   organizer.ID,
		RecipientMail: organizer.Email,
		RecipientName: organizer.FullName,
		Accepted:      req.Accept,
		Reason:        req.Reason,
	})

	return nil
}

// ===========================
// 🔍 Queues and stats
func (s *Service) ListOrganizers(ctx context.Context, status, search string) ([]PendingOrganizer, error) {
	return s.Repo.ListOrganizers(ctx, status, search)
}

func (s *Service) ListPendingOrganizers(ctx context.Context) ([]PendingOrganizer, error) {
	return s.Repo.ListOrganizers(ctx, auth.VerificationPending, "")
}

func (s *Service) ListPendingEvents(ctx context.Context) ([]event.Event, error) {
	return s.EventRepo.ListPendingValidation(ctx)
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	return s.Repo.Stats(ctx)
}

func (s *Service) Analytics(ctx context.Context) (*PlatformAnalytics, error) {
	return s.Repo.Analytics(ctx)
}

func (s *Service) publishDecision(ctx context.Context, d notification.ValidationDecision) {
	payload, err := json.Marshal(d)
	if err != nil {
		log.Printf("❌ Failed to marshal validation decision: %v", err)
		return
	}
	key := []byte(fmt.Sprintf("%s-%d", d.Kind, d.SubjectID))
	if err := utils.PublishMessage(ctx, key, payload); err != nil {
		log.Printf("❌ Failed to publish validation decision: %v", err)
	}
}
