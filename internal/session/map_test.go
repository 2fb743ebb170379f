package session

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

func testCatalog() []model.GeoEntity {
	return []model.GeoEntity{
		{Name: "France", Code: "FRA", Region: "Europe"},
		{Name: "Germany", Code: "DEU", Region: "Europe"},
		{Name: "Poland", Code: "POL", Region: "Europe"},
		{Name: "Japan", Code: "JPN", Region: "Asia"},
		{Name: "Brazil", Code: "BRA", Region: "Americas"},
	}
}

func TestFilterByRegion(t *testing.T) {
	catalog := testCatalog()

	t.Run("CaseInsensitiveTrimmed", func(t *testing.T) {
		got := FilterByRegion(catalog, "  eurOPE ")
		require.Len(t, got, 3)
		for _, e := range got {
			assert.Equal(t, "Europe", e.Region)
		}
	})

	t.Run("NoMatches", func(t *testing.T) {
		assert.Empty(t, FilterByRegion(catalog, "atlantis"))
	})
}

func TestShuffle_IsPermutation(t *testing.T) {
	catalog := testCatalog()
	rng := rand.New(rand.NewSource(42))

	shuffled := Shuffle(catalog, rng)
	require.Len(t, shuffled, len(catalog))

	names := func(es []model.GeoEntity) []string {
		out := make([]string, len(es))
		for i, e := range es {
			out[i] = e.Name
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, names(catalog), names(shuffled))

	// Input order untouched.
	assert.Equal(t, "France", catalog[0].Name)
	assert.Equal(t, "Brazil", catalog[4].Name)
}

// fixedOrderState builds a map state with a known queue order, bypassing
// the shuffle so transitions are deterministic.
func fixedOrderState(queue ...model.GeoEntity) MapState {
	return MapState{
		Region:   "Europe",
		Queue:    queue,
		Markers:  make(map[string]Marker),
		MaxScore: len(queue),
	}
}

func TestMapSession_WorkedExample(t *testing.T) {
	a := model.GeoEntity{Name: "A", Code: "AAA", Region: "Europe"}
	b := model.GeoEntity{Name: "B", Code: "BBB", Region: "Europe"}
	c := model.GeoEntity{Name: "C", Code: "CCC", Region: "Europe"}

	// Target order after shuffle is [B, A, C].
	st := fixedOrderState(b, a, c)

	// Clicking A when the target is B: B marked incorrect, queue advances,
	// score stays 0.
	st = ReduceMap(st, AttemptMade{Code: "AAA"})
	assert.Equal(t, MarkerIncorrect, st.Markers["B"])
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 2, st.Remaining())

	// Clicking A now that A is the target: correct.
	st = ReduceMap(st, AttemptMade{Code: "AAA"})
	assert.Equal(t, MarkerCorrect, st.Markers["A"])
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 1, st.Remaining())

	// Miss on C.
	st = ReduceMap(st, AttemptMade{Code: "AAA"})
	assert.Equal(t, MarkerIncorrect, st.Markers["C"])
	require.True(t, st.Finished())
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 3, st.MaxScore)
}

func TestMapSession_EmptyQueueAttemptIsNoop(t *testing.T) {
	st := fixedOrderState()
	require.True(t, st.Finished())

	next := ReduceMap(st, AttemptMade{Code: "FRA"})
	assert.Equal(t, st, next)
}

func TestMapSession_RemainingNeverNegative(t *testing.T) {
	catalog := FilterByRegion(testCatalog(), "europe")
	st := NewMapState(testCatalog(), "europe", false, rand.New(rand.NewSource(7)))
	require.Equal(t, len(catalog), st.Remaining())
	require.Equal(t, len(catalog), st.MaxScore)

	initial := st.Remaining()
	for i := 1; i <= initial+3; i++ {
		st = ReduceMap(st, AttemptMade{Code: "XXX"})
		want := initial - i
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, st.Remaining())
	}
	assert.True(t, st.Finished())
	assert.Len(t, st.Markers, initial)
}

func TestMapSession_MarkerIsWriteOnce(t *testing.T) {
	a := model.GeoEntity{Name: "A", Code: "AAA", Region: "Europe"}
	b := model.GeoEntity{Name: "B", Code: "BBB", Region: "Europe"}

	st := fixedOrderState(a, b)

	st = ReduceMap(st, AttemptMade{Code: "AAA"})
	require.Equal(t, MarkerCorrect, st.Markers["A"])

	// Further attempts resolve other targets; A's marker never changes.
	st = ReduceMap(st, AttemptMade{Code: "AAA"})
	assert.Equal(t, MarkerCorrect, st.Markers["A"])
	assert.Equal(t, MarkerIncorrect, st.Markers["B"])
}

func TestMapSession_ReducerDoesNotMutateInput(t *testing.T) {
	a := model.GeoEntity{Name: "A", Code: "AAA", Region: "Europe"}
	b := model.GeoEntity{Name: "B", Code: "BBB", Region: "Europe"}
	st := fixedOrderState(a, b)

	_ = ReduceMap(st, AttemptMade{Code: "AAA"})

	assert.Equal(t, 2, st.Remaining())
	assert.Empty(t, st.Markers)
	assert.Equal(t, 0, st.Score)
}

func TestMapSession_TargetIsQueueFront(t *testing.T) {
	a := model.GeoEntity{Name: "A", Code: "AAA", Region: "Europe"}
	b := model.GeoEntity{Name: "B", Code: "BBB", Region: "Europe"}
	st := fixedOrderState(a, b)

	target, ok := st.Target()
	require.True(t, ok)
	assert.Equal(t, "A", target.Name)

	st = ReduceMap(st, AttemptMade{Code: "BBB"})
	target, ok = st.Target()
	require.True(t, ok)
	assert.Equal(t, "B", target.Name)

	st = ReduceMap(st, AttemptMade{Code: "BBB"})
	_, ok = st.Target()
	assert.False(t, ok)
}
