package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

// --- Mocks ---

type mockRepo struct {
	createFn func(ctx context.Context, rev *Review) error
	existsFn func(ctx context.Context, eventID, participantID uint) (bool, error)
}

func (m *mockRepo) Create(ctx context.Context, rev *Review) error {
	return m.createFn(ctx, rev)
}
func (m *mockRepo) Exists(ctx context.Context, eventID, participantID uint) (bool, error) {
	return m.existsFn(ctx, eventID, participantID)
}
func (m *mockRepo) ListByEvent(ctx context.Context, eventID uint) ([]ReviewWithAuthor, error) {
	return nil, nil
}
func (m *mockRepo) Summary(ctx context.Context, eventID uint) (*RatingSummary, error) {
	return nil, nil
}

type mockRegRepo struct {
	findByEventAndUserFn func(ctx context.Context, eventID, userID uint) (*registration.Registration, error)
}

func (m *mockRegRepo) CreateRegistered(ctx context.Context, eventID, userID uint, paymentStatus string) (*registration.Registration, error) {
	return nil, nil
}
func (m *mockRegRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
	return m.findByEventAndUserFn(ctx, eventID, userID)
}
func (m *mockRegRepo) FindByID(ctx context.Context, id uint) (*registration.Registration, error) {
	return nil, nil
}
func (m *mockRegRepo) ListByUser(ctx context.Context, userID uint) ([]registration.RegistrationDetail, error) {
	return nil, nil
}
func (m *mockRegRepo) ListByEvent(ctx context.Context, eventID uint) ([]registration.Registration, error) {
	return nil, nil
}
func (m *mockRegRepo) MarkPresent(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (m *mockRegRepo) SetPaymentStatus(ctx context.Context, registrationID uint, status string) error {
	return nil
}
func (m *mockRegRepo) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	return 0, nil
}
func (m *mockRegRepo) CountPresentByEvent(ctx context.Context, eventID uint) (int64, error) {
	return 0, nil
}

type mockCatalog struct {
	reviewOpen bool
}

func (m *mockCatalog) GetEvent(ctx context.Context, id uint) (*event.Event, error) {
	return &event.Event{ID: id, EventName: "Tech Fest", ReviewOpen: m.reviewOpen}, nil
}

type mockAudit struct{}

func (m *mockAudit) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	return nil
}
func (m *mockAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (m *mockAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

// --- Helpers ---

func presentRegistration() *registration.Registration {
	return &registration.Registration{
		ID: 10,
		Attendance: &registration.Attendance{
			RegistrationID: 10,
			Status:         registration.AttendancePresent,
		},
	}
}

func reviewer() middleware.AccessContext {
	return middleware.AccessContext{UserID: 42, RoleName: middleware.RoleParticipant}
}

func sampleRequest() *CreateReviewRequest {
	return &CreateReviewRequest{Rating: 4, Message: "Great talks", Recommend: true}
}

// --- Tests ---

func TestCreateReview_Success(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, rev *Review) error {
			rev.ID = 1
			return nil
		},
		existsFn: func(ctx context.Context, eventID, participantID uint) (bool, error) {
			return false, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return presentRegistration(), nil
		},
	}

	svc := NewService(repo, regRepo, &mockCatalog{reviewOpen: true}, &mockAudit{})
	rev, err := svc.CreateReview(context.Background(), 5, sampleRequest(), reviewer(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, uint(42), rev.ParticipantID)
	assert.Equal(t, 4, rev.Rating)
}

func TestCreateReview_ReviewsClosed(t *testing.T) {
	svc := NewService(&mockRepo{}, &mockRegRepo{}, &mockCatalog{reviewOpen: false}, &mockAudit{})
	_, err := svc.CreateReview(context.Background(), 5, sampleRequest(), reviewer(), "10.0.0.1")

	assert.ErrorIs(t, err, ErrReviewClosed)
}

func TestCreateReview_NotRegistered(t *testing.T) {
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return nil, registration.ErrNotRegistered
		},
	}

	svc := NewService(&mockRepo{}, regRepo, &mockCatalog{reviewOpen: true}, &mockAudit{})
	_, err := svc.CreateReview(context.Background(), 5, sampleRequest(), reviewer(), "10.0.0.1")

	assert.ErrorIs(t, err, registration.ErrNotRegistered)
}

func TestCreateReview_NotCheckedIn(t *testing.T) {
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return &registration.Registration{
				ID: 10,
				Attendance: &registration.Attendance{
					RegistrationID: 10,
					Status:         registration.AttendanceAbsent,
				},
			}, nil
		},
	}

	svc := NewService(&mockRepo{}, regRepo, &mockCatalog{reviewOpen: true}, &mockAudit{})
	_, err := svc.CreateReview(context.Background(), 5, sampleRequest(), reviewer(), "10.0.0.1")

	assert.ErrorIs(t, err, ErrNotCheckedIn)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	repo := &mockRepo{
		existsFn: func(ctx context.Context, eventID, participantID uint) (bool, error) {
			return true, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return presentRegistration(), nil
		},
	}

	svc := NewService(repo, regRepo, &mockCatalog{reviewOpen: true}, &mockAudit{})
	_, err := svc.CreateReview(context.Background(), 5, sampleRequest(), reviewer(), "10.0.0.1")

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
