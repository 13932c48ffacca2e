package payment

import "time"

// Payment statuses
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Payment tracks one Razorpay order for a paid registration.
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RegistrationID uint      `gorm:"column:registration_id;index;not null" json:"registration_id"`
	UserID         uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	EventID        uint      `gorm:"column:event_id;index;not null" json:"event_id"`
	Amount         float64   `gorm:"not null" json:"amount"`
	OrderID        string    `gorm:"column:order_id;size:100;uniqueIndex" json:"order_id"`
	PaymentID      string    `gorm:"column:payment_id;size:100" json:"payment_id"`
	Method         string    `gorm:"size:50" json:"method"`
	Status         string    `gorm:"size:20;default:PENDING;index" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

type CreatePaymentResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
}

type VerifyPaymentRequest struct {
	OrderID     string `json:"razorpay_order_id" binding:"required"`
	PaymentID   string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySig string `json:"razorpay_signature" binding:"required"`
}
