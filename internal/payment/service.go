package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/AvalonleFae/ezevent/config"
	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/middleware"
)

var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrNothingToPay     = errors.New("this registration has nothing to pay")
)

type Service interface {
	// StartPayment creates a Razorpay order for a pending registration.
	// Calling it again for the same registration returns the open order.
	StartPayment(ctx context.Context, registrationID uint, ac middleware.AccessContext, ip string) (*CreatePaymentResponse, error)
	// VerifyPayment checks the gateway signature and marks the
	// registration paid. Re-verifying a settled order is a no-op.
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest, ac middleware.AccessContext, ip string) error
}

type service struct {
	repo     Repository
	regRepo  registration.Repository
	eventSvc *event.Service
	client   *razorpay.Client
	cfg      *config.Config
	auditSvc auditlog.Service
}

func NewService(repo Repository, regRepo registration.Repository, eventSvc *event.Service, cfg *config.Config, auditSvc auditlog.Service) Service {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	return &service{
		repo:     repo,
		regRepo:  regRepo,
		eventSvc: eventSvc,
		client:   client,
		cfg:      cfg,
		auditSvc: auditSvc,
	}
}

func (s *service) StartPayment(ctx context.Context, registrationID uint, ac middleware.AccessContext, ip string) (*CreatePaymentResponse, error) {
	reg, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != ac.UserID {
		return nil, errors.New("registration does not belong to caller")
	}
	if reg.PaymentStatus == "paid" || reg.PaymentStatus == "none" {
		return nil, ErrNothingToPay
	}

	e, err := s.eventSvc.GetEvent(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}

	// Idempotency: reuse the open order if one exists
	if existing, err := s.repo.GetByRegistrationID(ctx, registrationID); err == nil && existing.Status == StatusPending {
		return &CreatePaymentResponse{
			OrderID:  existing.OrderID,
			Amount:   existing.Amount,
			Currency: "INR",
			Key:      s.cfg.RazorpayKey,
		}, nil
	}

	amountInPaise := int(e.Price * 100)
	data := map[string]interface{}{
		"amount":          amountInPaise,
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"user_id":         ac.UserID,
			"event_id":        e.ID,
			"registration_id": registrationID,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &ac.UserID, &e.ID, "PAYMENT_INITIATED", map[string]interface{}{
			"registration_id": registrationID,
			"error":           err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	p := &Payment{
		RegistrationID: registrationID,
		UserID:         ac.UserID,
		EventID:        e.ID,
		Amount:         e.Price,
		OrderID:        orderID,
		Status:         StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	s.auditSvc.LogAction(ctx, &ac.UserID, &e.ID, "PAYMENT_INITIATED", map[string]interface{}{
		"registration_id": registrationID,
		"order_id":        orderID,
		"amount":          e.Price,
	}, ip, "success")

	return &CreatePaymentResponse{
		OrderID:  orderID,
		Amount:   e.Price,
		Currency: "INR",
		Key:      s.cfg.RazorpayKey,
	}, nil
}

func (s *service) VerifyPayment(ctx context.Context, req VerifyPaymentRequest, ac middleware.AccessContext, ip string) error {
	// Step 1: Verify HMAC signature
	expected := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	expected.Write([]byte(req.OrderID + "|" + req.PaymentID))
	computedSignature := hex.EncodeToString(expected.Sum(nil))

	if computedSignature != req.RazorpaySig {
		s.auditSvc.LogAction(ctx, &ac.UserID, nil, "PAYMENT_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "invalid payment signature",
		}, ip, "failure")
		return ErrInvalidSignature
	}

	// Step 2: Load our record
	p, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return errors.New("payment record not found")
	}
	if p.Status == StatusSuccess {
		return nil // already settled
	}

	// Step 3: Fetch payment details from Razorpay
	payment, err := s.client.Payment.Fetch(req.PaymentID, nil, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &ac.UserID, &p.EventID, "PAYMENT_VERIFICATION_FAILED", map[string]interface{}{
			"order_id": req.OrderID,
			"error":    err.Error(),
		}, ip, "failure")
		return fmt.Errorf("razorpay payment fetch failed: %w", err)
	}

	status, _ := payment["status"].(string)
	method, _ := payment["method"].(string)

	if status != "captured" && status != "authorized" {
		p.Status = StatusFailed
		p.PaymentID = req.PaymentID
		_ = s.repo.Update(ctx, p)
		return fmt.Errorf("payment not captured (status=%s)", status)
	}

	p.Status = StatusSuccess
	p.PaymentID = req.PaymentID
	p.Method = method
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	if err := s.regRepo.SetPaymentStatus(ctx, p.RegistrationID, "paid"); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &ac.UserID, &p.EventID, "PAYMENT_VERIFIED", map[string]interface{}{
		"order_id":        req.OrderID,
		"payment_id":      req.PaymentID,
		"registration_id": p.RegistrationID,
	}, ip, "success")

	return nil
}
