package models

import "time"

// TransactionStatus is the lifecycle state of a payment transaction.
type TransactionStatus string

const (
	StatusPending       TransactionStatus = "pending"
	StatusCompleted     TransactionStatus = "completed"
	StatusFailed        TransactionStatus = "failed"
	StatusCancelled     TransactionStatus = "cancelled"
	StatusRefundPending TransactionStatus = "refund-pending"
)

// PaymentTransaction is a single payment attempt tied to one booking.
// Transitions: pending -> completed (confirm), pending -> failed,
// pending -> cancelled (gateway-side), completed -> refund-pending -> completed.
type PaymentTransaction struct {
	PaymentID     string            `bson:"paymentId" json:"paymentId"`
	Provider      string            `bson:"provider" json:"provider"`
	Status        TransactionStatus `bson:"status" json:"status"`
	Amount        float64           `bson:"amount" json:"amount"`
	Currency      string            `bson:"currency" json:"currency"`
	BookingID     string            `bson:"bookingId" json:"bookingId"`
	TransactionID string            `bson:"transactionId,omitempty" json:"transactionId,omitempty"` // gateway capture reference, set on confirm
	Fees          float64           `bson:"fees,omitempty" json:"fees,omitempty"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// PaymentRequest is the input to create a payment for a booking.
type PaymentRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	BookingID     string  `json:"bookingId"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
	Description   string  `json:"description"`
}

// CreatePaymentResult is what the caller needs to complete checkout.
// Stripe fills ClientSecret; PayPal fills ApprovalURL.
type CreatePaymentResult struct {
	PaymentID    string            `json:"paymentId"`
	ApprovalURL  string            `json:"approvalUrl,omitempty"`
	ClientSecret string            `json:"clientSecret,omitempty"`
	Status       TransactionStatus `json:"status"`
	Provider     string            `json:"provider"`
}

// PaymentConfirmation is the result of capturing a pending payment.
type PaymentConfirmation struct {
	TransactionID string            `json:"transactionId"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	PaidAt        time.Time         `json:"paidAt"`
	Fees          float64           `json:"fees,omitempty"`
}

// RefundResult is the outcome of a refund request.
type RefundResult struct {
	RefundID   string            `json:"refundId"`
	Amount     float64           `json:"amount"`
	Status     TransactionStatus `json:"status"`
	RefundedAt *time.Time        `json:"refundedAt,omitempty"`
}

// PaymentStatusInfo is a read-only snapshot of a transaction.
type PaymentStatusInfo struct {
	Status    TransactionStatus `json:"status"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
