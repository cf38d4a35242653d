package vehicle

import (
	"strings"

	"detailify/models"
)

// Catalog is the static vehicle reference table. It is loaded once at
// process start and never mutated afterwards.
type Catalog struct {
	entries []models.CatalogEntry
}

// NewCatalog builds a catalog from the given entries.
func NewCatalog(entries []models.CatalogEntry) *Catalog {
	return &Catalog{entries: entries}
}

// NewDefaultCatalog returns the built-in UK market reference data.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(defaultEntries)
}

// Entries returns the catalog rows in load order.
func (c *Catalog) Entries() []models.CatalogEntry {
	return c.entries
}

// DisplayName renders an entry as "Make Model Trim".
func DisplayName(e models.CatalogEntry) string {
	parts := []string{e.Make, e.Model}
	if e.Trim != "" {
		parts = append(parts, e.Trim)
	}
	return strings.Join(parts, " ")
}

var defaultEntries = []models.CatalogEntry{
	{Make: "Ford", Model: "Fiesta", Size: models.SizeS},
	{Make: "Ford", Model: "Fiesta", Trim: "ST", Size: models.SizeS},
	{Make: "Ford", Model: "Focus", Size: models.SizeM},
	{Make: "Ford", Model: "Focus", Trim: "ST-Line", Size: models.SizeM},
	{Make: "Ford", Model: "Kuga", Size: models.SizeL},
	{Make: "Ford", Model: "Mondeo", Size: models.SizeL},
	{Make: "Ford", Model: "Transit", Size: models.SizeXL},
	{Make: "Ford", Model: "Transit Custom", Size: models.SizeXL},
	{Make: "Vauxhall", Model: "Corsa", Size: models.SizeS},
	{Make: "Vauxhall", Model: "Astra", Size: models.SizeM},
	{Make: "Vauxhall", Model: "Insignia", Size: models.SizeL},
	{Make: "Volkswagen", Model: "Polo", Size: models.SizeS},
	{Make: "Volkswagen", Model: "Golf", Size: models.SizeM},
	{Make: "Volkswagen", Model: "Golf", Trim: "GTI", Size: models.SizeM},
	{Make: "Volkswagen", Model: "Passat", Size: models.SizeL},
	{Make: "Volkswagen", Model: "Tiguan", Size: models.SizeL},
	{Make: "Volkswagen", Model: "Touareg", Size: models.SizeXL},
	{Make: "Volkswagen", Model: "Transporter", Size: models.SizeXL},
	{Make: "BMW", Model: "1 Series", Size: models.SizeM},
	{Make: "BMW", Model: "3 Series", Size: models.SizeM},
	{Make: "BMW", Model: "3 Series", Trim: "M Sport", Size: models.SizeM},
	{Make: "BMW", Model: "5 Series", Size: models.SizeL},
	{Make: "BMW", Model: "X3", Size: models.SizeL},
	{Make: "BMW", Model: "X5", Size: models.SizeXL},
	{Make: "BMW", Model: "X7", Size: models.SizeXL},
	{Make: "Audi", Model: "A1", Size: models.SizeS},
	{Make: "Audi", Model: "A3", Size: models.SizeM},
	{Make: "Audi", Model: "A4", Size: models.SizeL},
	{Make: "Audi", Model: "A6", Size: models.SizeL},
	{Make: "Audi", Model: "Q5", Size: models.SizeL},
	{Make: "Audi", Model: "Q7", Size: models.SizeXL},
	{Make: "Mercedes-Benz", Model: "A-Class", Size: models.SizeM},
	{Make: "Mercedes-Benz", Model: "C-Class", Size: models.SizeL},
	{Make: "Mercedes-Benz", Model: "E-Class", Size: models.SizeL},
	{Make: "Mercedes-Benz", Model: "GLC", Size: models.SizeL},
	{Make: "Mercedes-Benz", Model: "GLE", Size: models.SizeXL},
	{Make: "Mercedes-Benz", Model: "Sprinter", Size: models.SizeXL},
	{Make: "Mercedes-Benz", Model: "Vito", Size: models.SizeXL},
	{Make: "Toyota", Model: "Aygo", Size: models.SizeS},
	{Make: "Toyota", Model: "Yaris", Size: models.SizeS},
	{Make: "Toyota", Model: "Corolla", Size: models.SizeM},
	{Make: "Toyota", Model: "RAV4", Size: models.SizeL},
	{Make: "Toyota", Model: "Land Cruiser", Size: models.SizeXL},
	{Make: "Honda", Model: "Jazz", Size: models.SizeS},
	{Make: "Honda", Model: "Civic", Size: models.SizeM},
	{Make: "Honda", Model: "CR-V", Size: models.SizeL},
	{Make: "Nissan", Model: "Micra", Size: models.SizeS},
	{Make: "Nissan", Model: "Juke", Size: models.SizeM},
	{Make: "Nissan", Model: "Qashqai", Size: models.SizeL},
	{Make: "Nissan", Model: "X-Trail", Size: models.SizeXL},
	{Make: "Land Rover", Model: "Defender", Size: models.SizeXL},
	{Make: "Land Rover", Model: "Discovery", Size: models.SizeXL},
	{Make: "Land Rover", Model: "Range Rover", Size: models.SizeXL},
	{Make: "Land Rover", Model: "Range Rover Evoque", Size: models.SizeL},
	{Make: "Mini", Model: "Cooper", Size: models.SizeS},
	{Make: "Mini", Model: "Countryman", Size: models.SizeM},
	{Make: "Hyundai", Model: "i10", Size: models.SizeS},
	{Make: "Hyundai", Model: "i30", Size: models.SizeM},
	{Make: "Hyundai", Model: "Tucson", Size: models.SizeL},
	{Make: "Kia", Model: "Picanto", Size: models.SizeS},
	{Make: "Kia", Model: "Ceed", Size: models.SizeM},
	{Make: "Kia", Model: "Sportage", Size: models.SizeL},
	{Make: "Kia", Model: "Sorento", Size: models.SizeXL},
	{Make: "Tesla", Model: "Model 3", Size: models.SizeM},
	{Make: "Tesla", Model: "Model Y", Size: models.SizeL},
	{Make: "Tesla", Model: "Model X", Size: models.SizeXL},
	{Make: "Skoda", Model: "Fabia", Size: models.SizeS},
	{Make: "Skoda", Model: "Octavia", Size: models.SizeM},
	{Make: "Skoda", Model: "Superb", Size: models.SizeL},
	{Make: "Skoda", Model: "Kodiaq", Size: models.SizeXL},
	{Make: "Peugeot", Model: "208", Size: models.SizeS},
	{Make: "Peugeot", Model: "308", Size: models.SizeM},
	{Make: "Peugeot", Model: "3008", Size: models.SizeL},
	{Make: "Renault", Model: "Clio", Size: models.SizeS},
	{Make: "Renault", Model: "Megane", Size: models.SizeM},
	{Make: "Renault", Model: "Trafic", Size: models.SizeXL},
	{Make: "Volvo", Model: "V60", Size: models.SizeL},
	{Make: "Volvo", Model: "XC60", Size: models.SizeL},
	{Make: "Volvo", Model: "XC90", Size: models.SizeXL},
	{Make: "Jaguar", Model: "XF", Size: models.SizeL},
	{Make: "Jaguar", Model: "F-Pace", Size: models.SizeL},
	{Make: "Porsche", Model: "911", Size: models.SizeM},
	{Make: "Porsche", Model: "Cayenne", Size: models.SizeXL},
}
