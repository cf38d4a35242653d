package models

import "time"

// RegistryVehicle is the record returned by the external vehicle registry.
// Only Make is guaranteed to be present; everything else depends on the
// registry's coverage for that plate.
type RegistryVehicle struct {
	Make              string `json:"make"`
	Model             string `json:"model,omitempty"`
	YearOfManufacture int    `json:"yearOfManufacture,omitempty"`
	FuelType          string `json:"fuelType,omitempty"`
	EngineCapacity    int    `json:"engineCapacity,omitempty"` // cc
	CO2Emissions      int    `json:"co2Emissions,omitempty"`   // g/km
	Colour            string `json:"colour,omitempty"`
	MotStatus         string `json:"motStatus,omitempty"`
	TaxStatus         string `json:"taxStatus,omitempty"`
}

// RegistrationLookupResult is a resolved registration, cached for 24 hours.
type RegistrationLookupResult struct {
	RegistrationNumber string     `json:"registrationNumber"` // normalized (uppercase, no spaces)
	Make               string     `json:"make"`
	Model              string     `json:"model,omitempty"`
	YearOfManufacture  int        `json:"yearOfManufacture,omitempty"`
	FuelType           string     `json:"fuelType,omitempty"`
	EngineCapacity     int        `json:"engineCapacity,omitempty"`
	CO2Emissions       int        `json:"co2Emissions,omitempty"`
	Size               SizeClass  `json:"size"`
	Confidence         Confidence `json:"confidence"`
	CachedAt           time.Time  `json:"cachedAt"`
}
