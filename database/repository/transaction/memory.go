package transactionRepo

import (
	"context"
	"sync"

	"detailify/models"
)

// MemoryTransactionStore is an in-process TransactionStore for tests.
type MemoryTransactionStore struct {
	mu        sync.Mutex
	byPayment map[string]models.PaymentTransaction
	byBooking map[string]string // bookingId -> paymentId
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		byPayment: make(map[string]models.PaymentTransaction),
		byBooking: make(map[string]string),
	}
}

func (m *MemoryTransactionStore) Create(_ context.Context, txn *models.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byBooking[txn.BookingID]; exists {
		return ErrDuplicateBooking
	}
	m.byPayment[txn.PaymentID] = *txn
	m.byBooking[txn.BookingID] = txn.PaymentID
	return nil
}

func (m *MemoryTransactionStore) GetByPaymentID(_ context.Context, paymentID string) (*models.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.byPayment[paymentID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := txn
	return &copied, nil
}

func (m *MemoryTransactionStore) GetByBookingID(_ context.Context, bookingID string) (*models.PaymentTransaction, error) {
	m.mu.Lock()
	paymentID, ok := m.byBooking[bookingID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetByPaymentID(context.Background(), paymentID)
}

func (m *MemoryTransactionStore) Update(_ context.Context, txn *models.PaymentTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byPayment[txn.PaymentID]; !ok {
		return ErrNotFound
	}
	m.byPayment[txn.PaymentID] = *txn
	return nil
}
