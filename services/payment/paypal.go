package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"detailify/models"
)

// PayPalGateway implements Gateway over the PayPal Orders v2 REST API.
// Access tokens are fetched with client credentials and cached until
// shortly before expiry.
type PayPalGateway struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client

	tokenMu      sync.Mutex
	accessToken  string
	tokenExpires time.Time
}

func NewPayPalGateway(baseURL, clientID, secret string) *PayPalGateway {
	return &PayPalGateway{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *PayPalGateway) Name() string {
	return "paypal"
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken returns a cached token or fetches a fresh one.
func (g *PayPalGateway) getAccessToken(ctx context.Context) (string, error) {
	g.tokenMu.Lock()
	defer g.tokenMu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpires) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.clientID, g.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", newProviderError("paypal", "token request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", newProviderError("paypal", fmt.Sprintf("token request returned status %d", resp.StatusCode), nil)
	}

	var token paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", newProviderError("paypal", "failed to decode token response", err)
	}

	g.accessToken = token.AccessToken
	// Refresh a minute early so in-flight calls never race expiry.
	g.tokenExpires = time.Now().Add(time.Duration(token.ExpiresIn-60) * time.Second)
	return g.accessToken, nil
}

// doJSON performs an authenticated JSON call and decodes the response into out.
func (g *PayPalGateway) doJSON(ctx context.Context, method, path string, body any, out any) error {
	token, err := g.getAccessToken(ctx)
	if err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return newProviderError("paypal", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = fmt.Sprintf("request returned status %d", resp.StatusCode)
		}
		return newProviderError("paypal", msg, nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newProviderError("paypal", "failed to decode response", err)
		}
	}
	return nil
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalCapture struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Amount paypalAmount `json:"amount"`
}

type paypalOrder struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	CreateTime    string `json:"create_time"`
	UpdateTime    string `json:"update_time"`
	Links         []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
	PurchaseUnits []struct {
		Amount   paypalAmount `json:"amount"`
		Payments *struct {
			Captures []paypalCapture `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func parseAmount(value string) float64 {
	parsed, _ := strconv.ParseFloat(value, 64)
	return parsed
}

func mapPayPalStatus(status string) models.TransactionStatus {
	switch status {
	case "COMPLETED":
		return models.StatusCompleted
	case "VOIDED":
		return models.StatusCancelled
	default: // CREATED, SAVED, APPROVED, PAYER_ACTION_REQUIRED
		return models.StatusPending
	}
}

func (g *PayPalGateway) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.CreatePaymentResult, error) {
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"reference_id": req.BookingID,
			"description":  req.Description,
			"amount": paypalAmount{
				CurrencyCode: strings.ToUpper(req.Currency),
				Value:        formatAmount(req.Amount),
			},
		}},
	}

	var order paypalOrder
	if err := g.doJSON(ctx, http.MethodPost, "/v2/checkout/orders", payload, &order); err != nil {
		return nil, err
	}

	result := &models.CreatePaymentResult{
		PaymentID: order.ID,
		Status:    models.StatusPending,
		Provider:  g.Name(),
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			result.ApprovalURL = link.Href
			break
		}
	}
	return result, nil
}

func (g *PayPalGateway) ConfirmPayment(ctx context.Context, paymentID string) (*models.PaymentConfirmation, error) {
	var order paypalOrder
	path := "/v2/checkout/orders/" + paymentID + "/capture"
	if err := g.doJSON(ctx, http.MethodPost, path, struct{}{}, &order); err != nil {
		return nil, err
	}

	if len(order.PurchaseUnits) == 0 || order.PurchaseUnits[0].Payments == nil ||
		len(order.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, newProviderError("paypal", "capture response missing capture details", nil)
	}
	capture := order.PurchaseUnits[0].Payments.Captures[0]
	if capture.Status != "COMPLETED" {
		return nil, newProviderError("paypal", "capture did not complete: "+capture.Status, nil)
	}

	return &models.PaymentConfirmation{
		TransactionID: capture.ID,
		Amount:        parseAmount(capture.Amount.Value),
		Currency:      capture.Amount.CurrencyCode,
		Status:        models.StatusCompleted,
		PaidAt:        time.Now(),
	}, nil
}

func (g *PayPalGateway) RefundPayment(ctx context.Context, paymentID string, amount *float64) (*models.RefundResult, error) {
	// The Orders API refunds against the capture, not the order, so fetch
	// the order first to locate the capture reference.
	var order paypalOrder
	if err := g.doJSON(ctx, http.MethodGet, "/v2/checkout/orders/"+paymentID, nil, &order); err != nil {
		return nil, err
	}
	if len(order.PurchaseUnits) == 0 || order.PurchaseUnits[0].Payments == nil ||
		len(order.PurchaseUnits[0].Payments.Captures) == 0 {
		return nil, newProviderError("paypal", "order has no capture to refund", nil)
	}
	capture := order.PurchaseUnits[0].Payments.Captures[0]

	payload := map[string]any{}
	if amount != nil {
		payload["amount"] = paypalAmount{
			CurrencyCode: capture.Amount.CurrencyCode,
			Value:        formatAmount(*amount),
		}
	}

	var refund struct {
		ID     string       `json:"id"`
		Status string       `json:"status"`
		Amount paypalAmount `json:"amount"`
	}
	path := "/v2/payments/captures/" + capture.ID + "/refund"
	if err := g.doJSON(ctx, http.MethodPost, path, payload, &refund); err != nil {
		return nil, err
	}

	result := &models.RefundResult{
		RefundID: refund.ID,
		Amount:   parseAmount(refund.Amount.Value),
		Status:   models.StatusRefundPending,
	}
	if refund.Status == "COMPLETED" {
		now := time.Now()
		result.Status = models.StatusCompleted
		result.RefundedAt = &now
	}
	return result, nil
}

func (g *PayPalGateway) GetPaymentStatus(ctx context.Context, paymentID string) (*models.PaymentStatusInfo, error) {
	var order paypalOrder
	if err := g.doJSON(ctx, http.MethodGet, "/v2/checkout/orders/"+paymentID, nil, &order); err != nil {
		return nil, err
	}

	info := &models.PaymentStatusInfo{
		Status: mapPayPalStatus(order.Status),
	}
	if len(order.PurchaseUnits) > 0 {
		info.Amount = parseAmount(order.PurchaseUnits[0].Amount.Value)
		info.Currency = order.PurchaseUnits[0].Amount.CurrencyCode
	}
	if created, err := time.Parse(time.RFC3339, order.CreateTime); err == nil {
		info.CreatedAt = created
		info.UpdatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, order.UpdateTime); err == nil {
		info.UpdatedAt = updated
	}
	return info, nil
}
