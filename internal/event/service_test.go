package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/middleware"
)

// --- Mocks ---

// mockAuth approves every organizer; create validation is what's under test.
type mockAuth struct{}

func (m *mockAuth) Register(in auth.RegisterInput) error { return nil }
func (m *mockAuth) Login(in auth.LoginInput) (*auth.TokenPair, *auth.User, error) {
	return nil, nil, nil
}
func (m *mockAuth) Refresh(refreshToken string) (string, error)        { return "", nil }
func (m *mockAuth) GetUserByID(userID uint) (auth.User, error)         { return auth.User{}, nil }
func (m *mockAuth) SaveFCMToken(userID uint, token string) error       { return nil }
func (m *mockAuth) RequestPasswordReset(email string) error            { return nil }
func (m *mockAuth) ResetPassword(token, newPassword string) error      { return nil }
func (m *mockAuth) Logout() error                                      { return nil }
func (m *mockAuth) GetPublicRoles() ([]auth.PublicRoleResponse, error) { return nil, nil }
func (m *mockAuth) GetOrganizerProfile(userID uint) (*auth.OrganizerProfile, error) {
	return nil, nil
}
func (m *mockAuth) GetParticipantProfile(userID uint) (*auth.ParticipantProfile, error) {
	return nil, nil
}
func (m *mockAuth) RequireVerifiedOrganizer(userID uint) error { return nil }

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

func validCreateRequest() *CreateEventRequest {
	start := time.Now().Add(48 * time.Hour)
	return &CreateEventRequest{
		EventName:   "Tech Fest",
		Description: "Annual tech festival",
		CategoryID:  1,
		Address:     "Main Hall",
		Capacity:    100,
		StartDate:   start.Format(dateLayout),
		EndDate:     start.Add(4 * time.Hour).Format(dateLayout),
	}
}

func organizer() middleware.AccessContext {
	return middleware.AccessContext{UserID: 7, RoleName: middleware.RoleOrganizer}
}

// --- Tests ---

// All three rejections fire before any repository write, so a nil repo is
// safe here.
func TestCreateEvent_RejectsPastStart(t *testing.T) {
	svc := NewService(nil, &mockAuth{}, nil, &mockAudit{})

	req := validCreateRequest()
	req.StartDate = time.Now().Add(-48 * time.Hour).Format(dateLayout)
	req.EndDate = time.Now().Add(48 * time.Hour).Format(dateLayout)

	_, err := svc.CreateEvent(context.Background(), req, organizer(), "10.0.0.1")
	assert.EqualError(t, err, "start_date must be in the future")
}

func TestCreateEvent_RejectsEndNotAfterStart(t *testing.T) {
	svc := NewService(nil, &mockAuth{}, nil, &mockAudit{})

	req := validCreateRequest()
	req.EndDate = req.StartDate

	_, err := svc.CreateEvent(context.Background(), req, organizer(), "10.0.0.1")
	assert.EqualError(t, err, "end_date must be after start_date")
}

func TestCreateEvent_RejectsNegativeCapacity(t *testing.T) {
	svc := NewService(nil, &mockAuth{}, nil, &mockAudit{})

	req := validCreateRequest()
	req.Capacity = -5

	_, err := svc.CreateEvent(context.Background(), req, organizer(), "10.0.0.1")
	assert.EqualError(t, err, "capacity must not be negative")
}
