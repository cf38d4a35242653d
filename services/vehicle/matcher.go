package vehicle

import (
	"sort"
	"strings"

	"detailify/models"
)

// Matcher performs fuzzy search over the vehicle catalog. It has no side
// effects and is deterministic for a fixed catalog and query.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Score tiers. The highest applicable tier wins; tiers are not cumulative.
const (
	scoreExactFull      = 100
	scoreExactMakeModel = 90
	scoreExactMake      = 80
	scoreExactModel     = 70
	scorePrefixFull     = 60
	scorePrefixMM       = 50
	scorePrefixMake     = 40
	scorePrefixModel    = 35
	scoreSubFull        = 30
	scoreSubMM          = 25
	scoreSubMake        = 20
	scoreSubModel       = 15
	scoreSubTrim        = 10
	scorePerWord        = 5
)

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scoreEntry computes the match score for one catalog entry, or 0 if the
// entry should be excluded from results.
func scoreEntry(entry models.CatalogEntry, query string) int {
	make_ := fold(entry.Make)
	model := fold(entry.Model)
	trim := fold(entry.Trim)
	makeModel := strings.TrimSpace(make_ + " " + model)
	full := strings.TrimSpace(makeModel + " " + trim)

	switch query {
	case full:
		return scoreExactFull
	case makeModel:
		return scoreExactMakeModel
	case make_:
		return scoreExactMake
	case model:
		return scoreExactModel
	}

	switch {
	case strings.HasPrefix(full, query):
		return scorePrefixFull
	case strings.HasPrefix(makeModel, query):
		return scorePrefixMM
	case strings.HasPrefix(make_, query):
		return scorePrefixMake
	case strings.HasPrefix(model, query):
		return scorePrefixModel
	}

	switch {
	case strings.Contains(full, query):
		return scoreSubFull
	case strings.Contains(makeModel, query):
		return scoreSubMM
	case strings.Contains(make_, query):
		return scoreSubMake
	case strings.Contains(model, query):
		return scoreSubModel
	case trim != "" && strings.Contains(trim, query):
		return scoreSubTrim
	}

	// Last resort: count distinct query words that appear anywhere in the
	// entry. The tier is capped below the substring tiers, so word hits can
	// never outrank a real match.
	seen := make(map[string]bool)
	hits := 0
	for _, word := range strings.Fields(query) {
		if seen[word] {
			continue
		}
		seen[word] = true
		if strings.Contains(make_, word) || strings.Contains(model, word) ||
			(trim != "" && strings.Contains(trim, word)) {
			hits++
		}
	}
	score := scorePerWord * hits
	if score > scoreSubTrim {
		score = scoreSubTrim
	}
	return score
}

// Search returns catalog matches for a free-text query, highest score first.
// Queries shorter than 2 characters return an empty list. Entries with equal
// scores retain catalog order; there is no secondary sort key.
func (m *Matcher) Search(query string, limit int) []models.VehicleMatch {
	q := fold(query)
	if len(q) < 2 {
		return []models.VehicleMatch{}
	}

	var matches []models.VehicleMatch
	for _, entry := range m.catalog.Entries() {
		score := scoreEntry(entry, q)
		if score == 0 {
			continue
		}
		matches = append(matches, models.VehicleMatch{
			Make:        entry.Make,
			Model:       entry.Model,
			Trim:        entry.Trim,
			Size:        entry.Size,
			MatchScore:  score,
			DisplayName: DisplayName(entry),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []models.VehicleMatch{}
	}
	return matches
}

// MatchExact looks up a single entry by make and model, and trim when given.
// Returns nil when there is no exact catalog row.
func (m *Matcher) MatchExact(makeName, model, trim string) *models.VehicleMatch {
	for _, entry := range m.catalog.Entries() {
		if fold(entry.Make) != fold(makeName) || fold(entry.Model) != fold(model) {
			continue
		}
		if trim != "" && fold(entry.Trim) != fold(trim) {
			continue
		}
		return &models.VehicleMatch{
			Make:        entry.Make,
			Model:       entry.Model,
			Trim:        entry.Trim,
			Size:        entry.Size,
			MatchScore:  scoreExactFull,
			DisplayName: DisplayName(entry),
		}
	}
	return nil
}

// ConfidenceForScore maps a match score onto the qualitative scale callers
// surface to users.
func ConfidenceForScore(score int) models.Confidence {
	switch {
	case score >= scoreExactMake:
		return models.ConfidenceHigh
	case score >= scoreSubFull:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
