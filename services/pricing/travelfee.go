package pricing

import (
	"context"
	"strings"
)

// TravelFeeService supplies the distance-based surcharge for a customer
// postcode. Implementations must be deterministic and idempotent for a
// fixed postcode; the pricing calculator never computes distance itself.
type TravelFeeService interface {
	FeeFor(ctx context.Context, postcode string) (float64, error)
}

// BandedTravelFee maps outward postcode districts to flat fees. Districts
// not in the table get the default fee, which covers genuinely out-of-area
// jobs.
type BandedTravelFee struct {
	Bands      map[string]float64
	DefaultFee float64
}

// NewDefaultTravelFee returns the fee bands for the home service area,
// centred on the configured base district.
func NewDefaultTravelFee(baseDistrict string) *BandedTravelFee {
	base := normalizeDistrict(baseDistrict)
	bands := map[string]float64{
		base: 0,
		// Neighbouring Brighton & Hove districts.
		"BN1": 0, "BN2": 5, "BN3": 5,
		"BN41": 10, "BN42": 10, "BN43": 10,
		"BN9": 15, "BN25": 15,
		"RH15": 20, "RH16": 20,
	}
	return &BandedTravelFee{Bands: bands, DefaultFee: 25}
}

// normalizeDistrict extracts the outward part of a postcode ("BN1 4GH" ->
// "BN1"), tolerating unspaced input.
func normalizeDistrict(postcode string) string {
	p := strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
	if len(p) > 3 {
		// Full postcodes end in digit + two letters; strip that inward part.
		inward := p[len(p)-3:]
		if inward[0] >= '0' && inward[0] <= '9' &&
			inward[1] >= 'A' && inward[1] <= 'Z' &&
			inward[2] >= 'A' && inward[2] <= 'Z' {
			return p[:len(p)-3]
		}
	}
	return p
}

func (b *BandedTravelFee) FeeFor(_ context.Context, postcode string) (float64, error) {
	district := normalizeDistrict(postcode)
	if fee, ok := b.Bands[district]; ok {
		return fee, nil
	}
	return b.DefaultFee, nil
}

// FixedTravelFee always returns the same fee; used in tests.
type FixedTravelFee struct {
	Fee float64
}

func (f FixedTravelFee) FeeFor(_ context.Context, _ string) (float64, error) {
	return f.Fee, nil
}
