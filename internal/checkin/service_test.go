package checkin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/notification"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

// --- Mocks ---

type mockQR struct {
	resolveFn func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error)
}

func (m *mockQR) GenerateForEvent(ctx context.Context, eventID uint) (*qrcode.QRCode, error) {
	return nil, nil
}
func (m *mockQR) Resolve(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
	return m.resolveFn(ctx, codeID)
}
func (m *mockQR) GetByEventID(ctx context.Context, eventID uint) (*qrcode.QRCode, error) {
	return nil, nil
}

type mockRegRepo struct {
	findByEventAndUserFn func(ctx context.Context, eventID, userID uint) (*registration.Registration, error)
	markPresentFn        func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error)
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
	return m.markPresentFn(ctx, registrationID, at)
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

type mockCatalog struct{}

func (m *mockCatalog) GetEvent(ctx context.Context, id uint) (*event.Event, error) {
	return &event.Event{ID: id, EventName: "Tech Fest"}, nil
}

type mockAudit struct {
	actions []string
}

func (m *mockAudit) LogAction(ctx context.Context, userID *uint, eventID *uint, action string, details map[string]interface{}, ip string, status string) error {
	m.actions = append(m.actions, action+":"+status)
	return nil
}
func (m *mockAudit) GetAuditLogs(ctx context.Context, filter auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return nil, nil
}
func (m *mockAudit) GetAuditLogByID(ctx context.Context, id uint) (*auditlog.AuditLogResponse, error) {
	return nil, nil
}

type mockNotif struct {
	inApp []string // "userID:category:title"
}

func (m *mockNotif) SendEmail(ctx context.Context, actorID uint, recipients []string, subject, body string) error {
	return nil
}
func (m *mockNotif) Push(ctx context.Context, userID uint, title, body string) error { return nil }
func (m *mockNotif) NotifyInApp(ctx context.Context, userID uint, eventID *uint, title, message, category string) error {
	m.inApp = append(m.inApp, fmt.Sprintf("%d:%s:%s", userID, category, title))
	return nil
}
func (m *mockNotif) ListInApp(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]notification.InAppNotification, error) {
	return nil, nil
}
func (m *mockNotif) MarkRead(ctx context.Context, userID, notificationID uint) error { return nil }
func (m *mockNotif) MarkAllRead(ctx context.Context, userID uint) error              { return nil }
func (m *mockNotif) CountUnread(ctx context.Context, userID uint) (int64, error)     { return 0, nil }
func (m *mockNotif) HandleValidationDecision(ctx context.Context, d notification.ValidationDecision) error {
	return nil
}

// --- Helpers ---

func newTestService(qr *mockQR, regRepo *mockRegRepo, audit *mockAudit) *Service {
	regSvc := registration.NewService(regRepo, &mockCatalog{}, audit)
	return NewService(qr, regSvc, audit)
}

func scanner() middleware.AccessContext {
	return middleware.AccessContext{UserID: 42, RoleName: middleware.RoleParticipant}
}

// --- Tests ---

func TestScan_Success(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			assert.Equal(t, uint(5), eventID)
			assert.Equal(t, uint(42), userID)
			return &registration.Registration{ID: 10, EventID: eventID, UserID: userID}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return at, false, nil
		},
	}
	audit := &mockAudit{}

	svc := newTestService(qr, regRepo, audit)
	res, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), res.EventID)
	assert.Equal(t, "Tech Fest", res.EventName)
	assert.Equal(t, uint(10), res.RegistrationID)
	assert.False(t, res.AlreadyCheckedIn)
	assert.False(t, res.CheckedInAt.IsZero())
	assert.Contains(t, audit.actions, "CHECKIN_SCAN:success")
}

func TestScan_DuplicateReportsAlreadyCheckedIn(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	firstCheckIn := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return &registration.Registration{ID: 10}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return firstCheckIn, true, nil
		},
	}

	svc := newTestService(qr, regRepo, &mockAudit{})
	res, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.NoError(t, err)
	assert.True(t, res.AlreadyCheckedIn)
	assert.Equal(t, firstCheckIn, res.CheckedInAt)
}

func TestScan_FirstCheckInDropsBellNotification(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return &registration.Registration{ID: 10}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return at, false, nil
		},
	}
	notif := &mockNotif{}

	svc := newTestService(qr, regRepo, &mockAudit{})
	svc.NotifSvc = notif
	_, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"42:checkin:Checked in"}, notif.inApp)
}

func TestScan_DuplicateSkipsBellNotification(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return &registration.Registration{ID: 10}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return at, true, nil
		},
	}
	notif := &mockNotif{}

	svc := newTestService(qr, regRepo, &mockAudit{})
	svc.NotifSvc = notif
	_, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Empty(t, notif.inApp)
}

func TestScan_UnknownCode(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return nil, qrcode.ErrNotFound
		},
	}
	audit := &mockAudit{}

	svc := newTestService(qr, &mockRegRepo{}, audit)
	_, err := svc.Scan(context.Background(), "bogus", scanner(), "10.0.0.1")

	assert.ErrorIs(t, err, qrcode.ErrNotFound)
	assert.Contains(t, audit.actions, "CHECKIN_SCAN:failure")
}

func TestScan_UnlinkedCode(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return nil, qrcode.ErrUnlinked
		},
	}

	svc := newTestService(qr, &mockRegRepo{}, &mockAudit{})
	_, err := svc.Scan(context.Background(), "orphan", scanner(), "10.0.0.1")

	assert.ErrorIs(t, err, qrcode.ErrUnlinked)
}

func TestScan_NotRegistered(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return nil, registration.ErrNotRegistered
		},
	}

	svc := newTestService(qr, regRepo, &mockAudit{})
	_, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.ErrorIs(t, err, registration.ErrNotRegistered)
}

func TestScan_AttendanceMissing(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			return &registration.Registration{ID: 10}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return time.Time{}, false, registration.ErrAttendanceMissing
		},
	}

	svc := newTestService(qr, regRepo, &mockAudit{})
	_, err := svc.Scan(context.Background(), "code-abc", scanner(), "10.0.0.1")

	assert.ErrorIs(t, err, registration.ErrAttendanceMissing)
}

func TestScanFor_ChecksInNamedParticipant(t *testing.T) {
	qr := &mockQR{
		resolveFn: func(ctx context.Context, codeID string) (*qrcode.ResolvedEvent, error) {
			return &qrcode.ResolvedEvent{EventID: 5, Name: "Tech Fest"}, nil
		},
	}
	regRepo := &mockRegRepo{
		findByEventAndUserFn: func(ctx context.Context, eventID, userID uint) (*registration.Registration, error) {
			assert.Equal(t, uint(77), userID)
			return &registration.Registration{ID: 12, UserID: userID}, nil
		},
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return at, false, nil
		},
	}

	desk := middleware.AccessContext{UserID: 7, RoleName: middleware.RoleOrganizer}
	svc := newTestService(qr, regRepo, &mockAudit{})
	res, err := svc.ScanFor(context.Background(), "code-abc", 77, desk, "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, uint(12), res.RegistrationID)
}
