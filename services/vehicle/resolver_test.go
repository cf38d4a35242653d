package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"detailify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	record *models.RegistryVehicle
	err    error
	calls  int
}

func (f *fakeRegistry) Lookup(_ context.Context, _ string) (*models.RegistryVehicle, error) {
	f.calls++
	return f.record, f.err
}

func newTestResolver(registry RegistryClient, cache LookupCache) *RegistrationResolver {
	return NewRegistrationResolver(registry, NewMatcher(NewDefaultCatalog()), cache)
}

func TestNormalizeRegistration(t *testing.T) {
	assert.Equal(t, "AB12CDE", NormalizeRegistration("ab12 cde"))
	assert.Equal(t, "AB12CDE", NormalizeRegistration("  AB12  CDE  "))
	assert.Equal(t, "A123BCD", NormalizeRegistration("a123 bcd"))
}

func TestIsValidPlate(t *testing.T) {
	valid := []string{"AB12CDE", "A123BCD", "ABC123D", "1234AB", "AB1234"}
	for _, plate := range valid {
		assert.True(t, IsValidPlate(plate), plate)
	}

	invalid := []string{"", "123", "ABCDEFGH", "AB12CDE9", "AB-12-CDE", "12345AB"}
	for _, plate := range invalid {
		assert.False(t, IsValidPlate(plate), plate)
	}
}

func TestResolveInvalidPlateIsEmptyResult(t *testing.T) {
	registry := &fakeRegistry{}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	result, err := resolver.Resolve(context.Background(), "not a plate!")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Zero(t, registry.calls, "registry must not be queried for malformed plates")
}

func TestResolveUnknownPlateIsEmptyResult(t *testing.T) {
	registry := &fakeRegistry{record: nil}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	result, err := resolver.Resolve(context.Background(), "AB12 CDE")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 1, registry.calls)
}

func TestResolveCatalogMatchAdoptsSizeWithHighConfidence(t *testing.T) {
	registry := &fakeRegistry{record: &models.RegistryVehicle{
		Make:           "Ford",
		Model:          "Fiesta",
		EngineCapacity: 998,
	}}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	result, err := resolver.Resolve(context.Background(), "ab12 cde")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "AB12CDE", result.RegistrationNumber)
	assert.Equal(t, models.SizeS, result.Size)
	assert.Equal(t, models.ConfidenceHigh, result.Confidence)
}

func TestResolveUncataloguedVehicleFallsBackToInference(t *testing.T) {
	registry := &fakeRegistry{record: &models.RegistryVehicle{
		Make:           "Pagani",
		Model:          "Huayra",
		EngineCapacity: 5980,
	}}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	result, err := resolver.Resolve(context.Background(), "AB12CDE")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, models.SizeXL, result.Size)
	assert.Equal(t, models.ConfidenceMedium, result.Confidence)
}

func TestResolveCachesLookups(t *testing.T) {
	registry := &fakeRegistry{record: &models.RegistryVehicle{Make: "Ford", Model: "Focus"}}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	_, err := resolver.Resolve(context.Background(), "AB12 CDE")
	require.NoError(t, err)
	result, err := resolver.Resolve(context.Background(), "ab12cde")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, registry.calls, "second resolve must come from cache")
}

func TestResolveCacheExpiresAfterTTL(t *testing.T) {
	registry := &fakeRegistry{record: &models.RegistryVehicle{Make: "Ford", Model: "Focus"}}

	// Entries are stamped with the real clock, so the fake clock starts there.
	now := time.Now()
	cache := NewMemoryLookupCache()
	cache.Now = func() time.Time { return now }
	resolver := newTestResolver(registry, cache)

	_, err := resolver.Resolve(context.Background(), "AB12CDE")
	require.NoError(t, err)
	require.Equal(t, 1, registry.calls)

	// Still fresh just inside the TTL.
	now = now.Add(cache.TTL - time.Minute)
	_, err = resolver.Resolve(context.Background(), "AB12CDE")
	require.NoError(t, err)
	assert.Equal(t, 1, registry.calls)

	// Expired: the resolver must go back to the registry.
	now = now.Add(2 * time.Minute)
	_, err = resolver.Resolve(context.Background(), "AB12CDE")
	require.NoError(t, err)
	assert.Equal(t, 2, registry.calls)
}

func TestResolveSurfacesRegistryFailures(t *testing.T) {
	registry := &fakeRegistry{err: &RegistryError{Provider: "dvla", Message: "registry returned status 503"}}
	resolver := newTestResolver(registry, NewMemoryLookupCache())

	result, err := resolver.Resolve(context.Background(), "AB12CDE")
	assert.Nil(t, result)
	require.Error(t, err)

	var registryErr *RegistryError
	assert.True(t, errors.As(err, &registryErr))
}
