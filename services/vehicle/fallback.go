package vehicle

import (
	"strings"

	"detailify/models"
)

// sizeKeywordRule maps a model/make keyword to a size class. Rules are
// evaluated in order; the first hit wins.
type sizeKeywordRule struct {
	keyword string
	size    models.SizeClass
}

var fallbackRules = []sizeKeywordRule{
	// Vans and large SUVs.
	{"transit", models.SizeXL},
	{"sprinter", models.SizeXL},
	{"transporter", models.SizeXL},
	{"crafter", models.SizeXL},
	{"trafic", models.SizeXL},
	{"vito", models.SizeXL},
	{"range rover", models.SizeXL},
	{"land cruiser", models.SizeXL},
	{"discovery", models.SizeXL},
	{"defender", models.SizeXL},
	// Superminis and city cars.
	{"fiesta", models.SizeS},
	{"corsa", models.SizeS},
	{"polo", models.SizeS},
	{"aygo", models.SizeS},
	{"yaris", models.SizeS},
	{"micra", models.SizeS},
	{"picanto", models.SizeS},
	{"i10", models.SizeS},
	{"up!", models.SizeS},
	{"mini", models.SizeS},
	// Executive saloons and mid SUVs.
	{"5 series", models.SizeL},
	{"e-class", models.SizeL},
	{"a6", models.SizeL},
	{"superb", models.SizeL},
	{"passat", models.SizeL},
	{"mondeo", models.SizeL},
	{"insignia", models.SizeL},
}

// FallbackSize guesses a size class from make and model alone, for callers
// that have no engine or emissions data. Unrecognized vehicles default to M.
func FallbackSize(makeName, model string) models.SizeClass {
	combined := fold(makeName) + " " + fold(model)
	for _, rule := range fallbackRules {
		if strings.Contains(combined, rule.keyword) {
			return rule.size
		}
	}
	return models.SizeM
}

var inferenceRulesXL = []string{
	"suv", "x5", "x6", "x7", "q7", "q8", "range rover", "gle", "gls", "g-class",
}

var inferenceRulesL = []string{
	"5 series", "x3", "x4", "a6", "q5", "c-class", "e-class", "glc",
}

// InferSizeFromSpec derives a size class from registry data when the catalog
// has no matching entry. Make/model keyword families are checked first;
// engine capacity (cc) and CO2 emissions (g/km) thresholds decide the rest.
func InferSizeFromSpec(makeName, model string, engineCapacity, co2Emissions int) models.SizeClass {
	combined := fold(makeName) + " " + fold(model)
	for _, keyword := range inferenceRulesXL {
		if strings.Contains(combined, keyword) {
			return models.SizeXL
		}
	}
	for _, keyword := range inferenceRulesL {
		if strings.Contains(combined, keyword) {
			return models.SizeL
		}
	}

	switch {
	case engineCapacity > 3000 || co2Emissions > 200:
		return models.SizeXL
	case engineCapacity > 2000 || co2Emissions > 150:
		return models.SizeL
	case engineCapacity > 1400 || co2Emissions > 120:
		return models.SizeM
	default:
		return models.SizeS
	}
}
