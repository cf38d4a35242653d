package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	transactionRepo "detailify/database/repository/transaction"
	"detailify/models"
	"detailify/utils"

	"go.uber.org/zap"
)

// Manager owns the payment transaction lifecycle on top of a pluggable
// gateway. The gateway can be swapped at runtime without changing caller
// code; the state machine and error taxonomy stay the same across
// providers.
//
// Lifecycle: pending -> completed (confirm) or pending -> failed;
// pending -> cancelled (gateway-side); completed -> refund-pending ->
// completed (refund). No transition leaves failed or cancelled.
type Manager struct {
	mu      sync.RWMutex
	gateway Gateway
	store   transactionRepo.TransactionStore
}

func NewManager(gateway Gateway, store transactionRepo.TransactionStore) *Manager {
	return &Manager{gateway: gateway, store: store}
}

// SetGateway swaps the active provider.
func (m *Manager) SetGateway(gateway Gateway) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gateway = gateway
}

func (m *Manager) currentGateway() Gateway {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gateway
}

// CreatePayment opens a pending transaction for a booking. A booking can
// only ever have one transaction; a second create for the same bookingId
// fails with a StateError before the gateway is called.
func (m *Manager) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.CreatePaymentResult, error) {
	if _, err := m.store.GetByBookingID(ctx, req.BookingID); err == nil {
		return nil, &StateError{Op: "createPayment", Message: "booking " + req.BookingID + " already has a payment transaction"}
	} else if !errors.Is(err, transactionRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing transaction: %w", err)
	}

	gateway := m.currentGateway()
	result, err := gateway.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := &models.PaymentTransaction{
		PaymentID: result.PaymentID,
		Provider:  gateway.Name(),
		Status:    models.StatusPending,
		Amount:    req.Amount,
		Currency:  req.Currency,
		BookingID: req.BookingID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(ctx, txn); err != nil {
		if errors.Is(err, transactionRepo.ErrDuplicateBooking) {
			// Lost a race with a concurrent create for the same booking.
			return nil, &StateError{Op: "createPayment", Message: "booking " + req.BookingID + " already has a payment transaction"}
		}
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	utils.GetLogger().Info("payment created",
		zap.String("paymentId", result.PaymentID),
		zap.String("bookingId", req.BookingID),
		zap.String("provider", gateway.Name()))

	return result, nil
}

// ConfirmPayment captures a pending transaction. Double confirmation of an
// already-completed transaction is rejected here; idempotency of the
// underlying capture is the gateway's responsibility.
func (m *Manager) ConfirmPayment(ctx context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	txn, err := m.store.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, transactionRepo.ErrNotFound) {
			return nil, &StateError{Op: "confirmPayment", Message: "no transaction " + paymentID + " was ever created"}
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.Status != models.StatusPending {
		return nil, &StateError{Op: "confirmPayment", Message: "transaction " + paymentID + " is " + string(txn.Status) + ", not pending"}
	}

	confirmation, err := m.currentGateway().ConfirmPayment(ctx, paymentID)
	if err != nil {
		// Transport or auth failures leave the transaction pending so it
		// can be reconciled later via GetPaymentStatus.
		return nil, err
	}

	txn.Status = models.StatusCompleted
	txn.TransactionID = confirmation.TransactionID
	txn.Fees = confirmation.Fees
	txn.UpdatedAt = time.Now()
	if err := m.store.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record confirmation: %w", err)
	}

	return confirmation, nil
}

// RefundPayment refunds a captured transaction, fully or partially. A
// transaction that was never confirmed has no capture to refund and fails
// with a StateError.
func (m *Manager) RefundPayment(ctx context.Context, paymentID string, amount *float64) (*models.RefundResult, error) {
	txn, err := m.store.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, transactionRepo.ErrNotFound) {
			return nil, &StateError{Op: "refundPayment", Message: "no transaction " + paymentID + " was ever created"}
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if txn.Status != models.StatusCompleted || txn.TransactionID == "" {
		return nil, &StateError{Op: "refundPayment", Message: "transaction " + paymentID + " has no prior capture"}
	}

	txn.Status = models.StatusRefundPending
	txn.UpdatedAt = time.Now()
	if err := m.store.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record refund-pending state: %w", err)
	}

	result, err := m.currentGateway().RefundPayment(ctx, paymentID, amount)
	if err != nil {
		// Refund never reached the gateway; restore the captured state.
		txn.Status = models.StatusCompleted
		txn.UpdatedAt = time.Now()
		if updateErr := m.store.Update(ctx, txn); updateErr != nil {
			utils.GetLogger().Error("failed to restore transaction after refund error",
				zap.String("paymentId", paymentID), zap.Error(updateErr))
		}
		return nil, err
	}

	txn.Status = models.StatusCompleted
	txn.UpdatedAt = time.Now()
	if err := m.store.Update(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}

	return result, nil
}

// GetPaymentStatus reads a transaction's state; safe to call in any state.
// A pending transaction is reconciled against the gateway so a crash
// between create and confirm eventually converges.
func (m *Manager) GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusInfo, error) {
	txn, err := m.store.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, transactionRepo.ErrNotFound) {
			return nil, &StateError{Op: "getPaymentStatus", Message: "no transaction " + paymentID + " was ever created"}
		}
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	if txn.Status == models.StatusPending {
		if remote, err := m.currentGateway().GetPaymentStatus(ctx, paymentID); err == nil && remote.Status != txn.Status {
			txn.Status = remote.Status
			txn.UpdatedAt = time.Now()
			if updateErr := m.store.Update(ctx, txn); updateErr != nil {
				utils.GetLogger().Warn("failed to persist reconciled payment status",
					zap.String("paymentId", paymentID), zap.Error(updateErr))
			}
		}
	}

	return &models.PaymentStatusInfo{
		Status:    txn.Status,
		Amount:    txn.Amount,
		Currency:  txn.Currency,
		CreatedAt: txn.CreatedAt,
		UpdatedAt: txn.UpdatedAt,
	}, nil
}
