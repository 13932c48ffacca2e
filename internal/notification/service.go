package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/AvalonleFae/ezevent/internal/auth"
)

type Service interface {
	// SendEmail logs and delivers an email through the email channel
	SendEmail(ctx context.Context, actorID uint, recipients []string, subject, body string) error
	// Push sends an FCM notification to a user's registered device
	Push(ctx context.Context, userID uint, title, body string) error
	// NotifyInApp writes a bell notification
	NotifyInApp(ctx context.Context, userID uint, eventID *uint, title, message, category string) error

	ListInApp(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// HandleValidationDecision fans one Kafka decision out to email,
	// push and the in-app bell.
	HandleValidationDecision(ctx context.Context, d ValidationDecision) error
}

type service struct {
	repo     Repository
	email    Channel
	push     Channel
	authRepo auth.Repository
}

func NewService(repo Repository, email Channel, push Channel, authRepo auth.Repository) Service {
	return &service{
		repo:     repo,
		email:    email,
		push:     push,
		authRepo: authRepo,
	}
}

func (s *service) SendEmail(ctx context.Context, actorID uint, recipients []string, subject, body string) error {
	recipientsJSON, _ := json.Marshal(recipients)
	entry := &NotificationLog{
		UserID:     actorID,
		Channel:    "email",
		Subject:    subject,
		Body:       body,
		Recipients: recipientsJSON,
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		return err
	}

	if err := s.email.Send(recipients, subject, body); err != nil {
		msg := err.Error()
		_ = s.repo.UpdateLogStatus(ctx, entry.ID, "failed", &msg)
		return err
	}

	return s.repo.UpdateLogStatus(ctx, entry.ID, "sent", nil)
}

func (s *service) Push(ctx context.Context, userID uint, title, body string) error {
	user, err := s.authRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user.FCMToken == "" {
		return nil // no registered device, not an error
	}

	recipientsJSON, _ := json.Marshal([]string{user.FCMToken})
	entry := &NotificationLog{
		UserID:     userID,
		Channel:    "push",
		Subject:    title,
		Body:       body,
		Recipients: recipientsJSON,
		Status:     "pending",
	}
	if err := s.repo.CreateLog(ctx, entry); err != nil {
		return err
	}

	if err := s.push.Send([]string{user.FCMToken}, title, body); err != nil {
		msg := err.Error()
		_ = s.repo.UpdateLogStatus(ctx, entry.ID, "failed", &msg)
		return err
	}

	return s.repo.UpdateLogStatus(ctx, entry.ID, "sent", nil)
}

func (s *service) NotifyInApp(ctx context.Context, userID uint, eventID *uint, title, message, category string) error {
	return s.repo.CreateInApp(ctx, &InAppNotification{
		UserID:   userID,
		EventID:  eventID,
		Title:    title,
		Message:  message,
		Category: category,
	})
}

func (s *service) ListInApp(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error) {
	return s.repo.ListInApp(ctx, userID, unreadOnly, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.repo.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) HandleValidationDecision(ctx context.Context, d ValidationDecision) error {
	var subject, body, title string

	switch {
	case d.Kind == "organizer" && d.Accepted:
		subject = "Your organizer account has been verified"
		body = fmt.Sprintf("Hello %s, your organizer account has been verified. You can now create and publish events.", d.RecipientName)
		title = "Organizer verified"
	case d.Kind == "organizer":
		subject = "Your organizer application was declined"
		body = fmt.Sprintf("Hello %s, your organizer application was declined.\nReason: %s", d.RecipientName, d.Reason)
		title = "Organizer application declined"
	case d.Kind == "event" && d.Accepted:
		subject = fmt.Sprintf("Your event \"%s\" has been approved", d.SubjectName)
		body = fmt.Sprintf("Hello %s, your event \"%s\" has been approved and is now visible to participants.", d.RecipientName, d.SubjectName)
		title = "Event approved"
	case d.Kind == "event":
		subject = fmt.Sprintf("Your event \"%s\" was declined", d.SubjectName)
		body = fmt.Sprintf("Hello %s, your event \"%s\" was declined.\nReason: %s", d.RecipientName, d.SubjectName, d.Reason)
		title = "Event declined"
	default:
		return fmt.Errorf("unknown validation decision kind: %s", d.Kind)
	}

	if err := s.SendEmail(ctx, d.RecipientID, []string{d.RecipientMail}, subject, body); err != nil {
		log.Printf("❌ Failed to email validation decision to %s: %v", d.RecipientMail, err)
	}

	if err := s.Push(ctx, d.RecipientID, title, body); err != nil {
		log.Printf("⚠️ Failed to push validation decision to user %d: %v", d.RecipientID, err)
	}

	var eventID *uint
	if d.Kind == "event" {
		id := d.SubjectID
		eventID = &id
	}
	return s.NotifyInApp(ctx, d.RecipientID, eventID, title, body, "validation")
}
