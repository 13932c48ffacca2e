package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/notification"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
	"github.com/AvalonleFae/ezevent/utils"
)

// ErrScanInFlight means another scan by the same caller is still running.
var ErrScanInFlight = errors.New("another scan is already in progress")

// Result is what the scanner screen shows after a scan. CheckedInAt is
// the first check-in's time even when the scan is a duplicate.
type Result struct {
	EventID          uint      `json:"event_id"`
	EventName        string    `json:"event_name"`
	RegistrationID   uint      `json:"registration_id"`
	AlreadyCheckedIn bool      `json:"already_checked_in"`
	CheckedInAt      time.Time `json:"checked_in_at"`
}

// Service runs the scan-to-attendance chain. Failures surface in a fixed
// order: unknown code, unlinked code, missing registration, then missing
// attendance record. A duplicate scan is a success that reports
// AlreadyCheckedIn.
type Service struct {
	QRSvc    qrcode.Service
	RegSvc   *registration.Service
	AuditSvc auditlog.Service

	// NotifSvc is optional; when set, a successful first check-in drops
	// a bell notification for the participant.
	NotifSvc notification.Service
}

func NewService(qrSvc qrcode.Service, regSvc *registration.Service, auditSvc auditlog.Service) *Service {
	return &Service{
		QRSvc:    qrSvc,
		RegSvc:   regSvc,
		AuditSvc: auditSvc,
	}
}

// Scan checks the caller in to the event the code resolves to.
func (s *Service) Scan(ctx context.Context, codeID string, ac middleware.AccessContext, ip string) (*Result, error) {
	return s.scan(ctx, codeID, ac.UserID, ac, ip)
}

// ScanFor checks a named participant in; used by organizers running a desk.
func (s *Service) ScanFor(ctx context.Context, codeID string, participantID uint, ac middleware.AccessContext, ip string) (*Result, error) {
	return s.scan(ctx, codeID, participantID, ac, ip)
}

func (s *Service) scan(ctx context.Context, codeID string, participantID uint, ac middleware.AccessContext, ip string) (*Result, error) {
	// One in-flight scan per caller; a stuck client retrying cannot
	// stack up concurrent chains.
	lockKey := fmt.Sprintf("scan_lock:%d", ac.UserID)
	locked, err := utils.AcquireLock(lockKey, 10*time.Second)
	if err == nil && !locked {
		return nil, ErrScanInFlight
	}
	if err == nil {
		defer utils.ReleaseLock(lockKey)
	}

	resolved, err := s.QRSvc.Resolve(ctx, codeID)
	if err != nil {
		s.logScan(ctx, ac, nil, codeID, err.Error(), ip, "failure")
		return nil, err
	}

	reg, err := s.RegSvc.Lookup(ctx, resolved.EventID, participantID)
	if err != nil {
		s.logScan(ctx, ac, &resolved.EventID, codeID, err.Error(), ip, "failure")
		return nil, err
	}

	checkedInAt, already, err := s.RegSvc.MarkPresent(ctx, reg.ID, ac, ip)
	if err != nil {
		return nil, err
	}

	s.logScan(ctx, ac, &resolved.EventID, codeID, "", ip, "success")

	if s.NotifSvc != nil && !already {
		eventID := resolved.EventID
		if err := s.NotifSvc.NotifyInApp(ctx, participantID, &eventID,
			"Checked in",
			fmt.Sprintf("You are checked in to %s. Enjoy the event!", resolved.Name),
			"checkin"); err != nil {
			log.Printf("⚠️ Failed to write check-in notification: %v", err)
		}
	}

	return &Result{
		EventID:          resolved.EventID,
		EventName:        resolved.Name,
		RegistrationID:   reg.ID,
		AlreadyCheckedIn: already,
		CheckedInAt:      checkedInAt,
	}, nil
}

func (s *Service) logScan(ctx context.Context, ac middleware.AccessContext, eventID *uint, codeID, errMsg, ip, status string) {
	details := map[string]interface{}{"code_id": codeID}
	if errMsg != "" {
		details["error"] = errMsg
	}
	s.AuditSvc.LogAction(ctx, &ac.UserID, eventID, "CHECKIN_SCAN", details, ip, status)
}
