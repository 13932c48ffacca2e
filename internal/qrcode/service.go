package qrcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qrgen "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/AvalonleFae/ezevent/config"
)

var (
	// ErrNotFound means the scanned id matches no stored code.
	ErrNotFound = errors.New("qr code not found")
	// ErrUnlinked means the code exists but points at no event.
	ErrUnlinked = errors.New("qr code is not linked to an event")
)

type Service interface {
	// GenerateForEvent mints a code for the event and renders its PNG.
	GenerateForEvent(ctx context.Context, eventID uint) (*QRCode, error)
	// Resolve maps a scanned code id to the event it identifies.
	Resolve(ctx context.Context, codeID string) (*ResolvedEvent, error)
	GetByEventID(ctx context.Context, eventID uint) (*QRCode, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GenerateForEvent(ctx context.Context, eventID uint) (*QRCode, error) {
	// Reuse the existing code on regeneration requests
	if existing, err := s.repo.FindByEventID(ctx, eventID); err == nil {
		return existing, nil
	}

	id := uuid.NewString()
	imagePath := fmt.Sprintf("qr_%s.png", id)

	if err := os.MkdirAll(config.UploadPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// The PNG encodes only the code id; everything else resolves server-side
	dst := filepath.Join(config.UploadPath, imagePath)
	if err := qrgen.WriteFile(id, qrgen.Medium, 256, dst); err != nil {
		return nil, fmt.Errorf("failed to render qr image: %w", err)
	}

	eid := eventID
	code := &QRCode{
		ID:        id,
		EventID:   &eid,
		ImagePath: imagePath,
	}
	if err := s.repo.Create(ctx, code); err != nil {
		return nil, err
	}

	return code, nil
}

func (s *service) Resolve(ctx context.Context, codeID string) (*ResolvedEvent, error) {
	code, err := s.repo.FindByID(ctx, codeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if code.EventID == nil {
		return nil, ErrUnlinked
	}

	// A missing or nameless event row does not block the scan; the id
	// stands in as the display name and the chain proceeds.
	name, err := s.repo.EventName(ctx, *code.EventID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = fmt.Sprint(*code.EventID)
	}

	return &ResolvedEvent{EventID: *code.EventID, Name: name}, nil
}

func (s *service) GetByEventID(ctx context.Context, eventID uint) (*QRCode, error) {
	return s.repo.FindByEventID(ctx, eventID)
}
