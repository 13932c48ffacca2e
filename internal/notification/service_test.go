package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AvalonleFae/ezevent/internal/auth"
)

// --- Mocks ---

type mockRepo struct {
	logs     []*NotificationLog
	statuses []string
	inApp    []*InAppNotification
}

func (m *mockRepo) CreateLog(ctx context.Context, entry *NotificationLog) error {
	entry.ID = uint(len(m.logs) + 1)
	m.logs = append(m.logs, entry)
	return nil
}
func (m *mockRepo) UpdateLogStatus(ctx context.Context, id uint, status string, errMsg *string) error {
	m.statuses = append(m.statuses, status)
	return nil
}
func (m *mockRepo) CreateInApp(ctx context.Context, n *InAppNotification) error {
	m.inApp = append(m.inApp, n)
	return nil
}
func (m *mockRepo) ListInApp(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error) {
	return nil, nil
}
func (m *mockRepo) MarkRead(ctx context.Context, userID, notificationID uint) error { return nil }
func (m *mockRepo) MarkAllRead(ctx context.Context, userID uint) error              { return nil }
func (m *mockRepo) CountUnread(ctx context.Context, userID uint) (int64, error)     { return 0, nil }

type mockChannel struct {
	sent []string // subjects
	err  error
}

func (m *mockChannel) Send(recipients []string, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, subject)
	return nil
}

type mockAuthRepo struct {
	fcmToken string
}

func (m *mockAuthRepo) Create(user *auth.User) error                 { return nil }
func (m *mockAuthRepo) FindByEmail(email string) (*auth.User, error) { return nil, nil }
func (m *mockAuthRepo) FindByID(userID uint) (auth.User, error) {
	return auth.User{ID: userID, FCMToken: m.fcmToken}, nil
}
func (m *mockAuthRepo) FindRoleByName(name string) (*auth.UserRole, error)    { return nil, nil }
func (m *mockAuthRepo) GetPublicRoles() ([]auth.UserRole, error)              { return nil, nil }
func (m *mockAuthRepo) Update(user *auth.User) error                          { return nil }
func (m *mockAuthRepo) UpdateFCMToken(userID uint, token string) error        { return nil }
func (m *mockAuthRepo) CreateOrganizerProfile(p *auth.OrganizerProfile) error { return nil }
func (m *mockAuthRepo) FindOrganizerProfile(userID uint) (*auth.OrganizerProfile, error) {
	return nil, nil
}
func (m *mockAuthRepo) CreateParticipantProfile(p *auth.ParticipantProfile) error { return nil }
func (m *mockAuthRepo) FindParticipantProfile(userID uint) (*auth.ParticipantProfile, error) {
	return nil, nil
}

// --- Tests ---

func TestSendEmail_LogsThenSends(t *testing.T) {
	repo := &mockRepo{}
	email := &mockChannel{}

	svc := NewService(repo, email, &mockChannel{}, &mockAuthRepo{})
	err := svc.SendEmail(context.Background(), 1, []string{"a@example.edu"}, "Hello", "Body")

	assert.NoError(t, err)
	assert.Len(t, repo.logs, 1)
	assert.Equal(t, []string{"Hello"}, email.sent)
	assert.Equal(t, []string{"sent"}, repo.statuses)
}

func TestSendEmail_FailureMarksLog(t *testing.T) {
	repo := &mockRepo{}
	email := &mockChannel{err: errors.New("smtp down")}

	svc := NewService(repo, email, &mockChannel{}, &mockAuthRepo{})
	err := svc.SendEmail(context.Background(), 1, []string{"a@example.edu"}, "Hello", "Body")

	assert.Error(t, err)
	assert.Equal(t, []string{"failed"}, repo.statuses)
}

func TestPush_NoDeviceIsNotAnError(t *testing.T) {
	repo := &mockRepo{}
	push := &mockChannel{}

	svc := NewService(repo, &mockChannel{}, push, &mockAuthRepo{fcmToken: ""})
	err := svc.Push(context.Background(), 42, "Title", "Body")

	assert.NoError(t, err)
	assert.Empty(t, push.sent)
	assert.Empty(t, repo.logs)
}

func TestPush_DeliversToRegisteredDevice(t *testing.T) {
	repo := &mockRepo{}
	push := &mockChannel{}

	svc := NewService(repo, &mockChannel{}, push, &mockAuthRepo{fcmToken: "device-token"})
	err := svc.Push(context.Background(), 42, "Title", "Body")

	assert.NoError(t, err)
	assert.Equal(t, []string{"Title"}, push.sent)
}

func TestHandleValidationDecision_OrganizerAccepted(t *testing.T) {
	repo := &mockRepo{}
	email := &mockChannel{}
	push := &mockChannel{}

	svc := NewService(repo, email, push, &mockAuthRepo{fcmToken: "device-token"})
	err := svc.HandleValidationDecision(context.Background(), ValidationDecision{
		Kind:          "organizer",
		SubjectID:     7,
		RecipientID:   7,
		RecipientMail: "org@example.edu",
		RecipientName: "Organizer One",
		Accepted:      true,
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"Your organizer account has been verified"}, email.sent)
	assert.Equal(t, []string{"Organizer verified"}, push.sent)
	assert.Len(t, repo.inApp, 1)
	assert.Equal(t, "validation", repo.inApp[0].Category)
	assert.Nil(t, repo.inApp[0].EventID)
}

func TestHandleValidationDecision_EventDeclinedCarriesReason(t *testing.T) {
	repo := &mockRepo{}
	email := &mockChannel{}

	svc := NewService(repo, email, &mockChannel{}, &mockAuthRepo{})
	err := svc.HandleValidationDecision(context.Background(), ValidationDecision{
		Kind:          "event",
		SubjectID:     5,
		SubjectName:   "Tech Fest",
		RecipientID:   7,
		RecipientMail: "org@example.edu",
		RecipientName: "Organizer One",
		Accepted:      false,
		Reason:        "date conflicts with exams",
	})

	assert.NoError(t, err)
	assert.Len(t, repo.inApp, 1)
	assert.NotNil(t, repo.inApp[0].EventID)
	assert.Equal(t, uint(5), *repo.inApp[0].EventID)
	assert.Contains(t, repo.inApp[0].Message, "date conflicts with exams")
}

func TestHandleValidationDecision_EmailFailureStillWritesInApp(t *testing.T) {
	repo := &mockRepo{}
	email := &mockChannel{err: errors.New("smtp down")}

	svc := NewService(repo, email, &mockChannel{}, &mockAuthRepo{})
	err := svc.HandleValidationDecision(context.Background(), ValidationDecision{
		Kind:          "organizer",
		RecipientID:   7,
		RecipientMail: "org@example.edu",
		RecipientName: "Organizer One",
		Accepted:      true,
	})

	assert.NoError(t, err)
	assert.Len(t, repo.inApp, 1)
}

func TestHandleValidationDecision_UnknownKind(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockChannel{}, &mockChannel{}, &mockAuthRepo{})
	err := svc.HandleValidationDecision(context.Background(), ValidationDecision{Kind: "mystery"})

	assert.Error(t, err)
}
