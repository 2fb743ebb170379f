package geodata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool, len(catalog))
	regions := make(map[string]int)
	for _, e := range catalog {
		assert.Len(t, e.Code, 3, "code for %s", e.Name)
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
		regions[e.Region]++
	}

	// Every canonical region has entries.
	for _, r := range []string{"Africa", "Americas", "Asia", "Europe", "Oceania"} {
		assert.NotZero(t, regions[r], "region %s", r)
	}
}

func TestValidRegion(t *testing.T) {
	assert.True(t, ValidRegion("europe"))
	assert.True(t, ValidRegion(" Europe "))
	assert.True(t, ValidRegion("OCEANIA"))
	assert.False(t, ValidRegion("antarctica"))
	assert.False(t, ValidRegion(""))
}

func TestQuizID(t *testing.T) {
	id, ok := QuizID("europe", false)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = QuizID("Europe", true)
	require.True(t, ok)
	assert.Equal(t, 6, id)

	_, ok = QuizID("atlantis", false)
	assert.False(t, ok)
}
