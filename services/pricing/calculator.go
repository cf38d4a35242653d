package pricing

import (
	"context"
	"fmt"
	"math"

	"detailify/models"
)

// basePriceTable is the static size-class x tier table, in whole currency
// units. Valeting prices scale with vehicle size, not with travel.
var basePriceTable = map[models.SizeClass]map[models.ServiceTier]float64{
	models.SizeS: {
		models.TierExterior: 25,
		models.TierInterior: 35,
		models.TierFull:     55,
		models.TierShowroom: 120,
	},
	models.SizeM: {
		models.TierExterior: 30,
		models.TierInterior: 40,
		models.TierFull:     65,
		models.TierShowroom: 140,
	},
	models.SizeL: {
		models.TierExterior: 35,
		models.TierInterior: 50,
		models.TierFull:     80,
		models.TierShowroom: 170,
	},
	models.SizeXL: {
		models.TierExterior: 45,
		models.TierInterior: 60,
		models.TierFull:     100,
		models.TierShowroom: 210,
	},
}

// DefaultAddOns is the optional-extras catalog.
var DefaultAddOns = []models.AddOn{
	{ID: "air-freshener", Name: "Air freshener", Price: 5},
	{ID: "wax-upgrade", Name: "Premium wax upgrade", Price: 10},
	{ID: "pet-hair-removal", Name: "Pet hair removal", Price: 15},
	{ID: "engine-bay", Name: "Engine bay clean", Price: 20},
	{ID: "odour-treatment", Name: "Odour treatment", Price: 25},
	{ID: "headlight-restore", Name: "Headlight restoration", Price: 30},
}

// Calculator computes price quotes from vehicle size, service tier, add-ons
// and the travel fee supplied by the distance-fee collaborator.
type Calculator struct {
	addOns         map[string]models.AddOn
	addOnOrder     []models.AddOn
	tierMultiplier float64
	travelFees     TravelFeeService
	currency       string
}

func NewCalculator(addOns []models.AddOn, tierMultiplier float64, travelFees TravelFeeService, currency string) *Calculator {
	if tierMultiplier <= 0 {
		tierMultiplier = 1.0
	}
	byID := make(map[string]models.AddOn, len(addOns))
	for _, addOn := range addOns {
		byID[addOn.ID] = addOn
	}
	return &Calculator{
		addOns:         byID,
		addOnOrder:     addOns,
		tierMultiplier: tierMultiplier,
		travelFees:     travelFees,
		currency:       currency,
	}
}

// AddOns returns the extras catalog in display order.
func (c *Calculator) AddOns() []models.AddOn {
	return c.addOnOrder
}

// BasePrice looks up the table price for a size and tier, applying the
// configured tier multiplier.
func (c *Calculator) BasePrice(size models.SizeClass, tier models.ServiceTier) (float64, error) {
	tiers, ok := basePriceTable[size]
	if !ok {
		return 0, fmt.Errorf("unknown size class %q", size)
	}
	price, ok := tiers[tier]
	if !ok {
		return 0, fmt.Errorf("unknown service tier %q", tier)
	}
	return math.Round(price * c.tierMultiplier), nil
}

// QuoteWithFee builds a quote from an already-known travel fee. Unknown
// add-on IDs contribute nothing; that is deliberate, so stale clients with
// an outdated extras list still get a usable quote.
func (c *Calculator) QuoteWithFee(size models.SizeClass, tier models.ServiceTier, addOnIDs []string, travelFee float64) (models.PriceQuote, error) {
	basePrice, err := c.BasePrice(size, tier)
	if err != nil {
		return models.PriceQuote{}, err
	}

	var addOnsPrice float64
	for _, id := range addOnIDs {
		if addOn, ok := c.addOns[id]; ok {
			addOnsPrice += addOn.Price
		}
	}

	return models.PriceQuote{
		BasePrice:   basePrice,
		AddOnsPrice: addOnsPrice,
		TravelFee:   travelFee,
		TotalPrice:  basePrice + addOnsPrice + travelFee,
		Currency:    c.currency,
	}, nil
}

// Quote prices a prospective booking, fetching the travel fee for the
// customer's postcode from the distance-fee collaborator.
func (c *Calculator) Quote(ctx context.Context, size models.SizeClass, tier models.ServiceTier, addOnIDs []string, postcode string) (models.PriceQuote, error) {
	travelFee, err := c.travelFees.FeeFor(ctx, postcode)
	if err != nil {
		return models.PriceQuote{}, fmt.Errorf("travel fee lookup failed: %w", err)
	}
	return c.QuoteWithFee(size, tier, addOnIDs, travelFee)
}
