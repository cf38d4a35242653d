package payment

import (
	"context"
	"fmt"

	"detailify/config"
	"detailify/models"
)

// Gateway is the provider-agnostic payment contract. Every provider honors
// the same status lifecycle and error taxonomy even though the underlying
// gateway semantics differ. Providers are tagged variants selected by
// configuration at construction, never by runtime type inspection.
type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.CreatePaymentResult, error)
	ConfirmPayment(ctx context.Context, paymentID string) (*models.PaymentConfirmation, error)
	RefundPayment(ctx context.Context, paymentID string, amount *float64) (*models.RefundResult, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusInfo, error)
}

// NewGatewayFromConfig selects the configured gateway implementation.
func NewGatewayFromConfig(cfg config.Config) (Gateway, error) {
	switch cfg.PaymentProvider {
	case "stripe":
		return NewStripeGateway(), nil
	case "paypal":
		return NewPayPalGateway(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalSecret), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.PaymentProvider)
	}
}
