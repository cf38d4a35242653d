package payment

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"detailify/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway implements Gateway over Stripe PaymentIntents with manual
// capture: CreatePayment opens the intent, ConfirmPayment captures it.
// The package-level stripe.Key is set from config at startup.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) Name() string {
	return "stripe"
}

// minorUnits converts a decimal amount to Stripe's integer minor units.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func majorUnits(amount int64) float64 {
	return float64(amount) / 100
}

func wrapStripeErr(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return newProviderError("stripe", op+": "+stripeErr.Msg, err)
	}
	return newProviderError("stripe", op+" failed", err)
}

func (g *StripeGateway) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.CreatePaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(minorUnits(req.Amount)),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		Description:   stripe.String(req.Description),
		ReceiptEmail:  stripe.String(req.CustomerEmail),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
	}
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("customerName", req.CustomerName)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, wrapStripeErr("create payment intent", err)
	}

	return &models.CreatePaymentResult{
		PaymentID:    intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       models.StatusPending,
		Provider:     g.Name(),
	}, nil
}

func (g *StripeGateway) ConfirmPayment(ctx context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	params := &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	}
	intent, err := paymentintent.Capture(paymentID, params)
	if err != nil {
		return nil, wrapStripeErr("capture payment intent", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, newProviderError("stripe", "capture did not succeed: "+string(intent.Status), nil)
	}

	transactionID := intent.ID
	if intent.LatestCharge != nil {
		transactionID = intent.LatestCharge.ID
	}

	return &models.PaymentConfirmation{
		TransactionID: transactionID,
		Amount:        majorUnits(intent.AmountReceived),
		Currency:      strings.ToUpper(string(intent.Currency)),
		Status:        models.StatusCompleted,
		PaidAt:        time.Now(),
	}, nil
}

func (g *StripeGateway) RefundPayment(ctx context.Context, paymentID string, amount *float64) (*models.RefundResult, error) {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentID),
	}
	if amount != nil {
		params.Amount = stripe.Int64(minorUnits(*amount))
	}

	ref, err := refund.New(params)
	if err != nil {
		return nil, wrapStripeErr("create refund", err)
	}

	result := &models.RefundResult{
		RefundID: ref.ID,
		Amount:   majorUnits(ref.Amount),
		Status:   models.StatusRefundPending,
	}
	if ref.Status == stripe.RefundStatusSucceeded {
		refundedAt := time.Unix(ref.Created, 0)
		result.Status = models.StatusCompleted
		result.RefundedAt = &refundedAt
	}
	return result, nil
}

func (g *StripeGateway) GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusInfo, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	intent, err := paymentintent.Get(paymentID, params)
	if err != nil {
		return nil, wrapStripeErr("fetch payment intent", err)
	}

	var status models.TransactionStatus
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		status = models.StatusCompleted
	case stripe.PaymentIntentStatusCanceled:
		status = models.StatusCancelled
	default:
		status = models.StatusPending
	}

	created := time.Unix(intent.Created, 0)
	return &models.PaymentStatusInfo{
		Status:    status,
		Amount:    majorUnits(intent.Amount),
		Currency:  strings.ToUpper(string(intent.Currency)),
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}
