package qrcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockRepo struct {
	createFn        func(ctx context.Context, code *QRCode) error
	findByIDFn      func(ctx context.Context, id string) (*QRCode, error)
	findByEventIDFn func(ctx context.Context, eventID uint) (*QRCode, error)
	linkEventFn     func(ctx context.Context, id string, eventID uint) error
	eventNameFn     func(ctx context.Context, eventID uint) (string, error)
}

func (m *mockRepo) Create(ctx context.Context, code *QRCode) error {
	return m.createFn(ctx, code)
}
func (m *mockRepo) FindByID(ctx context.Context, id string) (*QRCode, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRepo) FindByEventID(ctx context.Context, eventID uint) (*QRCode, error) {
	return m.findByEventIDFn(ctx, eventID)
}
func (m *mockRepo) LinkEvent(ctx context.Context, id string, eventID uint) error {
	return m.linkEventFn(ctx, id, eventID)
}
func (m *mockRepo) EventName(ctx context.Context, eventID uint) (string, error) {
	return m.eventNameFn(ctx, eventID)
}

func TestResolve_Success(t *testing.T) {
	eid := uint(5)
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*QRCode, error) {
			return &QRCode{ID: id, EventID: &eid}, nil
		},
		eventNameFn: func(ctx context.Context, eventID uint) (string, error) {
			return "Tech Fest", nil
		},
	}

	svc := NewService(repo)
	resolved, err := svc.Resolve(context.Background(), "code-abc")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), resolved.EventID)
	assert.Equal(t, "Tech Fest", resolved.Name)
}

func TestResolve_UnknownCode(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*QRCode, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(repo)
	_, err := svc.Resolve(context.Background(), "bogus")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_UnlinkedCode(t *testing.T) {
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*QRCode, error) {
			return &QRCode{ID: id, EventID: nil}, nil
		},
	}

	svc := NewService(repo)
	_, err := svc.Resolve(context.Background(), "orphan")

	assert.ErrorIs(t, err, ErrUnlinked)
}

func TestResolve_MissingOrNamelessEventFallsBackToID(t *testing.T) {
	eid := uint(5)
	repo := &mockRepo{
		findByIDFn: func(ctx context.Context, id string) (*QRCode, error) {
			return &QRCode{ID: id, EventID: &eid}, nil
		},
		eventNameFn: func(ctx context.Context, eventID uint) (string, error) {
			return "", nil
		},
	}

	// A deleted or nameless event row does not block resolution; the id
	// stands in as the display name and check-in proceeds.
	svc := NewService(repo)
	resolved, err := svc.Resolve(context.Background(), "code-abc")

	assert.NoError(t, err)
	assert.Equal(t, uint(5), resolved.EventID)
	assert.Equal(t, "5", resolved.Name)
}
