package models

// SizeClass is the coarse vehicle category that drives the price tier.
type SizeClass string

const (
	SizeS  SizeClass = "S"  // superminis, city cars (Fiesta, Corsa)
	SizeM  SizeClass = "M"  // family hatchbacks, small saloons (Focus, Golf)
	SizeL  SizeClass = "L"  // executive saloons, small SUVs (5 Series, X3)
	SizeXL SizeClass = "XL" // large SUVs, vans, 7-seaters (Range Rover, Transit)
)

// IsValid checks if the size class is one of the four known categories.
func (s SizeClass) IsValid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL:
		return true
	}
	return false
}

// DisplayName returns a human-readable name for the size class.
func (s SizeClass) DisplayName() string {
	switch s {
	case SizeS:
		return "Small"
	case SizeM:
		return "Medium"
	case SizeL:
		return "Large"
	case SizeXL:
		return "Extra Large"
	default:
		return "Unknown"
	}
}

// CatalogEntry is one row of the static vehicle reference table.
type CatalogEntry struct {
	Make  string    `json:"make"`
	Model string    `json:"model"`
	Trim  string    `json:"trim,omitempty"`
	Size  SizeClass `json:"size"`
}

// VehicleMatch is a scored catalog hit for a free-text vehicle query.
type VehicleMatch struct {
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Trim        string    `json:"trim,omitempty"`
	Size        SizeClass `json:"size"`
	MatchScore  int       `json:"matchScore"` // 0-100
	DisplayName string    `json:"displayName"`
}

// Confidence expresses how strong a vehicle match or inference is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)
