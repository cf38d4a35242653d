package models

// VehicleResolution is the engine's answer to "what am I detailing?".
// Exactly one of Match or Lookup is set depending on how the vehicle
// was identified; Size and Confidence are always populated.
type VehicleResolution struct {
	Size       SizeClass                 `json:"size"`
	Confidence Confidence                `json:"confidence"`
	Match      *VehicleMatch             `json:"match,omitempty"`
	Lookup     *RegistrationLookupResult `json:"lookup,omitempty"`
}

// QuoteRequest carries everything needed to price a prospective booking.
type QuoteRequest struct {
	Size     SizeClass   `json:"size"`
	Tier     ServiceTier `json:"tier"`
	AddOnIDs []string    `json:"addOnIds"`
	Postcode string      `json:"postcode"`
}

// CheckoutRequest asks the engine to reserve a slot and create a payment.
type CheckoutRequest struct {
	BookingID     string      `json:"bookingId"`
	Date          string      `json:"date"`      // "2006-01-02"
	StartTime     string      `json:"startTime"` // "HH:MM"
	Size          SizeClass   `json:"size"`
	Tier          ServiceTier `json:"tier"`
	AddOnIDs      []string    `json:"addOnIds"`
	Postcode      string      `json:"postcode"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerName  string      `json:"customerName"`
}

// CheckoutResult is the engine's response to a successful checkout. The
// booking reference is echoed back because the engine mints one when the
// request did not carry its own.
type CheckoutResult struct {
	BookingID string              `json:"bookingId"`
	Quote     PriceQuote          `json:"quote"`
	Payment   CreatePaymentResult `json:"payment"`
}
