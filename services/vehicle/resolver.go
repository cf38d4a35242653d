package vehicle

import (
	"context"
	"fmt"
	"time"

	"detailify/models"
	"detailify/utils"

	"go.uber.org/zap"
)

// minAdoptScore is the matcher score at which a catalog hit is trusted over
// the heuristic size inference.
const minAdoptScore = 30

// RegistrationResolver turns a UK registration into a sized vehicle via the
// external registry, caching results for 24 hours. The resolver's cache is
// the only shared mutable state in the vehicle services; concurrent
// resolutions of the same plate may race to populate it, and last-write-wins
// is fine because every write holds the same external fact.
type RegistrationResolver struct {
	Registry RegistryClient
	Matcher  *Matcher
	Cache    LookupCache
}

func NewRegistrationResolver(registry RegistryClient, matcher *Matcher, cache LookupCache) *RegistrationResolver {
	return &RegistrationResolver{Registry: registry, Matcher: matcher, Cache: cache}
}

// Resolve looks up a registration. Malformed plates and unknown plates both
// resolve to (nil, nil); errors are reserved for registry failures.
func (r *RegistrationResolver) Resolve(ctx context.Context, registration string) (*models.RegistrationLookupResult, error) {
	logger := utils.GetLogger()

	normalized := NormalizeRegistration(registration)
	if !IsValidPlate(normalized) {
		return nil, nil
	}

	if cached, ok := r.Cache.Get(ctx, normalized); ok {
		logger.Debug("registration cache hit", zap.String("registration", normalized))
		return cached, nil
	}

	record, err := r.Registry.Lookup(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("registry lookup for %s failed: %w", normalized, err)
	}
	if record == nil {
		// No record, no local guessing.
		return nil, nil
	}

	size, confidence := r.classify(record)

	result := models.RegistrationLookupResult{
		RegistrationNumber: normalized,
		Make:               record.Make,
		Model:              record.Model,
		YearOfManufacture:  record.YearOfManufacture,
		FuelType:           record.FuelType,
		EngineCapacity:     record.EngineCapacity,
		CO2Emissions:       record.CO2Emissions,
		Size:               size,
		Confidence:         confidence,
		CachedAt:           time.Now(),
	}

	if err := r.Cache.Set(ctx, normalized, result); err != nil {
		logger.Warn("failed to cache registration lookup",
			zap.String("registration", normalized), zap.Error(err))
	}

	return &result, nil
}

// classify picks a size class for a registry record: a decent catalog match
// is adopted outright, otherwise the heuristic inference decides.
func (r *RegistrationResolver) classify(record *models.RegistryVehicle) (models.SizeClass, models.Confidence) {
	query := record.Make
	if record.Model != "" {
		query += " " + record.Model
	}

	matches := r.Matcher.Search(query, 1)
	if len(matches) > 0 && matches[0].MatchScore >= minAdoptScore {
		return matches[0].Size, models.ConfidenceHigh
	}

	size := InferSizeFromSpec(record.Make, record.Model, record.EngineCapacity, record.CO2Emissions)
	return size, models.ConfidenceMedium
}
