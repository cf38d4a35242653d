package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	transactionRepo "detailify/database/repository/transaction"
	"detailify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records calls and can be made to fail on demand. Captures
// echo back the amount and currency the payment was created with, the way
// a real gateway settles what was authorized.
type fakeGateway struct {
	name        string
	createErr   error
	confirmErr  error
	refundErr   error
	nextPayment int
	requests    map[string]models.PaymentRequest
	confirmed   []string
	refunded    []string
	status      models.TransactionStatus
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		name:     "fake",
		requests: make(map[string]models.PaymentRequest),
		status:   models.StatusPending,
	}
}

func (g *fakeGateway) Name() string { return g.name }

func (g *fakeGateway) CreatePayment(_ context.Context, req models.PaymentRequest) (*models.CreatePaymentResult, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextPayment++
	paymentID := fmt.Sprintf("pay_%d", g.nextPayment)
	g.requests[paymentID] = req
	return &models.CreatePaymentResult{
		PaymentID: paymentID,
		Status:    models.StatusPending,
		Provider:  g.name,
	}, nil
}

func (g *fakeGateway) ConfirmPayment(_ context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	if g.confirmErr != nil {
		return nil, g.confirmErr
	}
	g.confirmed = append(g.confirmed, paymentID)
	req := g.requests[paymentID]
	return &models.PaymentConfirmation{
		TransactionID: "txn_" + paymentID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        models.StatusCompleted,
		PaidAt:        time.Now(),
	}, nil
}

func (g *fakeGateway) RefundPayment(_ context.Context, paymentID string, amount *float64) (*models.RefundResult, error) {
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	g.refunded = append(g.refunded, paymentID)
	refunded := 0.0
	if amount != nil {
		refunded = *amount
	}
	now := time.Now()
	return &models.RefundResult{
		RefundID:   "re_" + paymentID,
		Amount:     refunded,
		Status:     models.StatusCompleted,
		RefundedAt: &now,
	}, nil
}

func (g *fakeGateway) GetPaymentStatus(_ context.Context, _ string) (*models.PaymentStatusInfo, error) {
	return &models.PaymentStatusInfo{Status: g.status}, nil
}

func newTestManager() (*Manager, *fakeGateway, *transactionRepo.MemoryTransactionStore) {
	gateway := newFakeGateway()
	store := transactionRepo.NewMemoryTransactionStore()
	return NewManager(gateway, store), gateway, store
}

func paymentRequest(bookingID string) models.PaymentRequest {
	return models.PaymentRequest{
		Amount:    70,
		Currency:  "GBP",
		BookingID: bookingID,
	}
}

func TestCreatePaymentRecordsPendingTransaction(t *testing.T) {
	manager, _, store := newTestManager()
	ctx := context.Background()

	result, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, result.Status)
	assert.Equal(t, "fake", result.Provider)

	txn, err := store.GetByPaymentID(ctx, result.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, txn.Status)
	assert.Equal(t, 70.0, txn.Amount)
	assert.Equal(t, "GBP", txn.Currency)
	assert.Equal(t, "bk-1", txn.BookingID)
}

func TestCreatePaymentRejectsSecondTransactionForBooking(t *testing.T) {
	manager, gateway, _ := newTestManager()
	ctx := context.Background()

	_, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)

	_, err = manager.CreatePayment(ctx, paymentRequest("bk-1"))
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, 1, gateway.nextPayment, "second create must not reach the gateway")
}

func TestConfirmPaymentCompletesAndPreservesAmount(t *testing.T) {
	manager, _, store := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)

	confirmation, err := manager.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, confirmation.Status)
	assert.Equal(t, 70.0, confirmation.Amount, "confirmed amount must equal the created amount")
	assert.Equal(t, "GBP", confirmation.Currency)

	txn, err := store.GetByPaymentID(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, txn.Status)
	assert.Equal(t, "txn_"+created.PaymentID, txn.TransactionID)
	assert.Equal(t, 70.0, txn.Amount, "confirmation must not change the recorded amount")
	assert.Equal(t, "GBP", txn.Currency)
}

func TestConfirmPaymentOfUnknownTransactionFails(t *testing.T) {
	manager, _, _ := newTestManager()

	_, err := manager.ConfirmPayment(context.Background(), "pay_missing")
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}

func TestConfirmPaymentTwiceFails(t *testing.T) {
	manager, gateway, _ := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)
	_, err = manager.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)

	_, err = manager.ConfirmPayment(ctx, created.PaymentID)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Len(t, gateway.confirmed, 1)
}

func TestConfirmPaymentGatewayFailureLeavesTransactionPending(t *testing.T) {
	manager, gateway, store := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)

	gateway.confirmErr = newProviderError("fake", "card declined", nil)
	_, err = manager.ConfirmPayment(ctx, created.PaymentID)
	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)

	txn, err := store.GetByPaymentID(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, txn.Status)
}

func TestRefundBeforeConfirmFails(t *testing.T) {
	manager, gateway, _ := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)

	_, err = manager.RefundPayment(ctx, created.PaymentID, nil)
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Empty(t, gateway.refunded, "a pending transaction has nothing to refund")
}

func TestRefundAfterConfirmSucceeds(t *testing.T) {
	manager, gateway, store := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)
	_, err = manager.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)

	amount := 20.0
	result, err := manager.RefundPayment(ctx, created.PaymentID, &amount)
	require.NoError(t, err)
	assert.Equal(t, 20.0, result.Amount)
	assert.Equal(t, []string{created.PaymentID}, gateway.refunded)

	txn, err := store.GetByPaymentID(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, txn.Status)
}

func TestRefundGatewayFailureRestoresCompletedState(t *testing.T) {
	manager, gateway, store := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)
	_, err = manager.ConfirmPayment(ctx, created.PaymentID)
	require.NoError(t, err)

	gateway.refundErr = newProviderError("fake", "refund rejected", nil)
	_, err = manager.RefundPayment(ctx, created.PaymentID, nil)
	require.Error(t, err)

	txn, err := store.GetByPaymentID(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, txn.Status)
}

func TestGetPaymentStatusReconcilesPendingTransactions(t *testing.T) {
	manager, gateway, store := newTestManager()
	ctx := context.Background()

	created, err := manager.CreatePayment(ctx, paymentRequest("bk-1"))
	require.NoError(t, err)

	// The gateway completed the payment but the confirm response was lost.
	gateway.status = models.StatusCompleted
	info, err := manager.GetPaymentStatus(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, info.Status)

	txn, err := store.GetByPaymentID(ctx, created.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, txn.Status)
}

func TestGetPaymentStatusUnknownTransaction(t *testing.T) {
	manager, _, _ := newTestManager()

	_, err := manager.GetPaymentStatus(context.Background(), "pay_missing")
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.False(t, errors.Is(err, transactionRepo.ErrNotFound))
}

func TestSetGatewaySwapsProvider(t *testing.T) {
	manager, _, _ := newTestManager()
	ctx := context.Background()

	replacement := newFakeGateway()
	replacement.name = "other"
	manager.SetGateway(replacement)

	result, err := manager.CreatePayment(ctx, paymentRequest("bk-2"))
	require.NoError(t, err)
	assert.Equal(t, "other", result.Provider)
}
