// Package geodata bundles the static geographic reference data consumed
// by map quiz sessions: the country catalog (display name, 3-letter code,
// region classification) and the fixed region → quiz identifier table.
package geodata

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

//go:embed countries.json
var rawCatalog []byte

var catalog []model.GeoEntity

// Regions lists the canonical map quiz regions.
var Regions = []string{"americas", "asia", "africa", "europe", "oceania"}

// quizIDs maps canonical region keys (optionally flags-suffixed) to the
// pregenerated quiz identifiers scores are submitted under.
var quizIDs = map[string]int{
	"europe":         1,
	"americas":       2,
	"asia":           3,
	"africa":         4,
	"oceania":        5,
	"europe_flags":   6,
	"americas_flags": 7,
	"asia_flags":     8,
	"africa_flags":   9,
	"oceania_flags":  10,
}

func init() {
	if err := json.Unmarshal(rawCatalog, &catalog); err != nil {
		panic("geodata: invalid embedded catalog: " + err.Error())
	}
}

// Catalog returns the full immutable country catalog. Callers must not
// modify the returned slice.
func Catalog() []model.GeoEntity {
	return catalog
}

// ValidRegion reports whether region names a known map quiz region,
// compared case-insensitively and trimmed.
func ValidRegion(region string) bool {
	want := strings.ToLower(strings.TrimSpace(region))
	for _, r := range Regions {
		if r == want {
			return true
		}
	}
	return false
}

// QuizID returns the quiz identifier a map session submits its score
// under. The flags variant of a region is a distinct quiz.
func QuizID(region string, flags bool) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(region))
	if flags {
		key += "_flags"
	}
	id, ok := quizIDs[key]
	return id, ok
}
