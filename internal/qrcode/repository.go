package qrcode

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, code *QRCode) error
	FindByID(ctx context.Context, id string) (*QRCode, error)
	FindByEventID(ctx context.Context, eventID uint) (*QRCode, error)
	LinkEvent(ctx context.Context, id string, eventID uint) error

	// EventName returns the stored event name for a linked code; empty
	// when the event row is missing or nameless.
	EventName(ctx context.Context, eventID uint) (string, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, code *QRCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*QRCode, error) {
	var code QRCode
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repository) FindByEventID(ctx context.Context, eventID uint) (*QRCode, error) {
	var code QRCode
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *repository) LinkEvent(ctx context.Context, id string, eventID uint) error {
	return r.db.WithContext(ctx).
		Model(&QRCode{}).
		Where("id = ?", id).
		Update("event_id", eventID).Error
}

func (r *repository) EventName(ctx context.Context, eventID uint) (string, error) {
	var row struct {
		EventName string
	}
	err := r.db.WithContext(ctx).
		Table("events").
		Select("event_name").
		Where("id = ?", eventID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return row.EventName, nil
}
