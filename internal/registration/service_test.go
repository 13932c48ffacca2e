package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/middleware"
)

// --- Mocks ---

type mockRepo struct {
	createRegisteredFn    func(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error)
	findByEventAndUserFn  func(ctx context.Context, eventID, userID uint) (*Registration, error)
	findByIDFn            func(ctx context.Context, id uint) (*Registration, error)
	listByUserFn          func(ctx context.Context, userID uint) ([]RegistrationDetail, error)
	listByEventFn         func(ctx context.Context, eventID uint) ([]Registration, error)
	markPresentFn         func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error)
	setPaymentStatusFn    func(ctx context.Context, registrationID uint, status string) error
	countByEventFn        func(ctx context.Context, eventID uint) (int64, error)
	countPresentByEventFn func(ctx context.Context, eventID uint) (int64, error)
}

func (m *mockRepo) CreateRegistered(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error) {
	return m.createRegisteredFn(ctx, eventID, userID, paymentStatus)
}
func (m *mockRepo) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*Registration, error) {
	return m.findByEventAndUserFn(ctx, eventID, userID)
}
func (m *mockRepo) FindByID(ctx context.Context, id uint) (*Registration, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRepo) ListByUser(ctx context.Context, userID uint) ([]RegistrationDetail, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockRepo) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	return m.listByEventFn(ctx, eventID)
}
func (m *mockRepo) MarkPresent(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
	return m.markPresentFn(ctx, registrationID, at)
}
func (m *mockRepo) SetPaymentStatus(ctx context.Context, registrationID uint, status string) error {
	return m.setPaymentStatusFn(ctx, registrationID, status)
}
func (m *mockRepo) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	return m.countByEventFn(ctx, eventID)
}
func (m *mockRepo) CountPresentByEvent(ctx context.Context, eventID uint) (int64, error) {
	return m.countPresentByEventFn(ctx, eventID)
}

type mockCatalog struct {
	getEventFn func(ctx context.Context, id uint) (*event.Event, error)
}

func (m *mockCatalog) GetEvent(ctx context.Context, id uint) (*event.Event, error) {
	return m.getEventFn(ctx, id)
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

// --- Helpers ---

func acceptedEvent(price float64) *event.Event {
	return &event.Event{
		ID:               1,
		OrganizerID:      7,
		EventName:        "Robotics Workshop",
		Status:           event.StatusAccepted,
		RegistrationOpen: true,
		Capacity:         100,
		Price:            price,
	}
}

func participant() middleware.AccessContext {
	return middleware.AccessContext{
		UserID:   42,
		RoleName: middleware.RoleParticipant,
		Email:    "student@example.edu",
		FullName: "Test Student",
	}
}

// --- Tests ---

func TestRegister_Success(t *testing.T) {
	repo := &mockRepo{
		createRegisteredFn: func(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error) {
			assert.Equal(t, "none", paymentStatus)
			return &Registration{ID: 10, EventID: eventID, UserID: userID, PaymentStatus: paymentStatus}, nil
		},
	}
	catalog := &mockCatalog{
		getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
			return acceptedEvent(0), nil
		},
	}
	audit := &mockAudit{}

	svc := NewService(repo, catalog, audit)
	reg, err := svc.Register(context.Background(), 1, participant(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, uint(10), reg.ID)
	assert.Contains(t, audit.actions, "EVENT_REGISTERED:success")
}

func TestRegister_PaidEventStartsPaymentPending(t *testing.T) {
	repo := &mockRepo{
		createRegisteredFn: func(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error) {
			assert.Equal(t, "pending", paymentStatus)
			return &Registration{ID: 11, PaymentStatus: paymentStatus}, nil
		},
	}
	catalog := &mockCatalog{
		getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
			return acceptedEvent(250), nil
		},
	}

	svc := NewService(repo, catalog, &mockAudit{})
	reg, err := svc.Register(context.Background(), 1, participant(), "10.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, "pending", reg.PaymentStatus)
}

func TestRegister_EventNotAccepted(t *testing.T) {
	catalog := &mockCatalog{
		getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
			e := acceptedEvent(0)
			e.Status = event.StatusPending
			return e, nil
		},
	}

	svc := NewService(&mockRepo{}, catalog, &mockAudit{})
	_, err := svc.Register(context.Background(), 1, participant(), "10.0.0.1")

	assert.ErrorIs(t, err, ErrEventNotAccepted)
}

func TestRegister_RepositoryGateErrors(t *testing.T) {
	for _, gateErr := range []error{ErrAlreadyRegistered, ErrEventClosed, ErrEventFull} {
		repo := &mockRepo{
			createRegisteredFn: func(ctx context.Context, eventID, userID uint, paymentStatus string) (*Registration, error) {
				return nil, gateErr
			},
		}
		catalog := &mockCatalog{
			getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
				return acceptedEvent(0), nil
			},
		}
		audit := &mockAudit{}

		svc := NewService(repo, catalog, audit)
		_, err := svc.Register(context.Background(), 1, participant(), "10.0.0.1")

		assert.ErrorIs(t, err, gateErr)
		assert.Contains(t, audit.actions, "EVENT_REGISTERED:failure")
	}
}

func TestMarkPresent_FirstMark(t *testing.T) {
	repo := &mockRepo{
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return at, false, nil
		},
	}
	audit := &mockAudit{}

	svc := NewService(repo, nil, audit)
	checkedInAt, already, err := svc.MarkPresent(context.Background(), 10, participant(), "10.0.0.1")

	assert.NoError(t, err)
	assert.False(t, already)
	assert.False(t, checkedInAt.IsZero())
	assert.Contains(t, audit.actions, "ATTENDANCE_MARKED:success")
}

func TestMarkPresent_SecondMarkIsIdempotent(t *testing.T) {
	// The mock behaves like the conditional UPDATE: the first mark stores
	// its timestamp, every later mark reports that same timestamp back.
	var stored time.Time
	repo := &mockRepo{
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			if stored.IsZero() {
				stored = at
				return stored, false, nil
			}
			return stored, true, nil
		},
	}

	svc := NewService(repo, nil, &mockAudit{})
	firstAt, already, err := svc.MarkPresent(context.Background(), 10, participant(), "10.0.0.1")
	assert.NoError(t, err)
	assert.False(t, already)

	secondAt, already, err := svc.MarkPresent(context.Background(), 10, participant(), "10.0.0.1")
	assert.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, firstAt, secondAt)
}

func TestMarkPresent_AttendanceMissing(t *testing.T) {
	repo := &mockRepo{
		markPresentFn: func(ctx context.Context, registrationID uint, at time.Time) (time.Time, bool, error) {
			return time.Time{}, false, ErrAttendanceMissing
		},
	}
	audit := &mockAudit{}

	svc := NewService(repo, nil, audit)
	_, _, err := svc.MarkPresent(context.Background(), 10, participant(), "10.0.0.1")

	assert.ErrorIs(t, err, ErrAttendanceMissing)
	assert.Contains(t, audit.actions, "ATTENDANCE_MARKED:failure")
}

func TestListForEvent_OwnerOnly(t *testing.T) {
	catalog := &mockCatalog{
		getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
			return acceptedEvent(0), nil // owned by organizer 7
		},
	}
	repo := &mockRepo{
		listByEventFn: func(ctx context.Context, eventID uint) ([]Registration, error) {
			return []Registration{{ID: 1}}, nil
		},
	}

	svc := NewService(repo, catalog, &mockAudit{})

	// A stranger organizer is rejected.
	stranger := middleware.AccessContext{UserID: 99, RoleName: middleware.RoleOrganizer}
	_, err := svc.ListForEvent(context.Background(), 1, stranger)
	assert.ErrorIs(t, err, event.ErrNotOwner)

	// The owner sees the list.
	owner := middleware.AccessContext{UserID: 7, RoleName: middleware.RoleOrganizer}
	regs, err := svc.ListForEvent(context.Background(), 1, owner)
	assert.NoError(t, err)
	assert.Len(t, regs, 1)

	// So does an admin.
	admin := middleware.AccessContext{UserID: 3, RoleName: middleware.RoleAdmin}
	regs, err = svc.ListForEvent(context.Background(), 1, admin)
	assert.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegister_EventLookupError(t *testing.T) {
	catalog := &mockCatalog{
		getEventFn: func(ctx context.Context, id uint) (*event.Event, error) {
			return nil, errors.New("db down")
		},
	}

	svc := NewService(&mockRepo{}, catalog, &mockAudit{})
	_, err := svc.Register(context.Background(), 1, participant(), "10.0.0.1")

	assert.Error(t, err)
}
