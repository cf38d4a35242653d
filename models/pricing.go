package models

// ServiceTier identifies a detailing package.
type ServiceTier string

const (
	TierExterior ServiceTier = "exterior"
	TierInterior ServiceTier = "interior"
	TierFull     ServiceTier = "full"
	TierShowroom ServiceTier = "showroom"
)

// IsValid checks if the service tier is one of the known packages.
func (t ServiceTier) IsValid() bool {
	switch t {
	case TierExterior, TierInterior, TierFull, TierShowroom:
		return true
	}
	return false
}

// AddOn is an optional extra (e.g. pet hair removal, engine bay clean).
type AddOn struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PriceQuote is a computed, non-persisted price breakdown.
// TotalPrice is always BasePrice + AddOnsPrice + TravelFee; it is never
// stored independently of its parts.
type PriceQuote struct {
	BasePrice   float64 `json:"basePrice"`
	AddOnsPrice float64 `json:"addOnsPrice"`
	TravelFee   float64 `json:"travelFee"`
	TotalPrice  float64 `json:"totalPrice"`
	Currency    string  `json:"currency"`
}
