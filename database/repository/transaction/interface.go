package transactionRepo

import (
	"context"
	"errors"

	"detailify/models"
)

var (
	// ErrNotFound is returned when no transaction exists for the given key.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicateBooking is returned when a booking already has a transaction.
	// One transaction per booking is enforced here, not in the gateway layer.
	ErrDuplicateBooking = errors.New("booking already has a payment transaction")
)

// TransactionStore persists payment transactions keyed by paymentId, with a
// uniqueness guarantee on bookingId.
type TransactionStore interface {
	Create(ctx context.Context, txn *models.PaymentTransaction) error
	GetByPaymentID(ctx context.Context, paymentID string) (*models.PaymentTransaction, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.PaymentTransaction, error)
	Update(ctx context.Context, txn *models.PaymentTransaction) error
}
