package session

import (
	"math/rand"
	"strings"

	"github.com/geoquiz/geoquiz-backend/internal/model"
)

// Marker is the recorded outcome for a resolved map quiz entity.
// Once written it is never overwritten.
type Marker string

const (
	MarkerCorrect   Marker = "correct"
	MarkerIncorrect Marker = "incorrect"
)

// MapState is the full state of one map quiz session. Queue shrinks by
// exactly one entry per scoring attempt; Markers grows by exactly one
// entry per resolved target, keyed by the target's display name.
type MapState struct {
	Region   string            `json:"region"`
	Flags    bool              `json:"flags"`
	Queue    []model.GeoEntity `json:"queue"`
	Markers  map[string]Marker `json:"markers"`
	Score    int               `json:"score"`
	MaxScore int               `json:"maxscore"`
}

// NewMapState filters the catalog to the requested region, shuffles the
// result uniformly and records the filtered count as the session maximum.
func NewMapState(catalog []model.GeoEntity, region string, flags bool, rng *rand.Rand) MapState {
	filtered := FilterByRegion(catalog, region)
	return MapState{
		Region:   region,
		Flags:    flags,
		Queue:    Shuffle(filtered, rng),
		Markers:  make(map[string]Marker),
		MaxScore: len(filtered),
	}
}

// FilterByRegion returns the catalog entities whose region classification
// matches the requested region, compared case-insensitively and trimmed.
func FilterByRegion(catalog []model.GeoEntity, region string) []model.GeoEntity {
	want := strings.ToLower(strings.TrimSpace(region))
	var out []model.GeoEntity
	for _, e := range catalog {
		if strings.ToLower(strings.TrimSpace(e.Region)) == want {
			out = append(out, e)
		}
	}
	return out
}

// Shuffle returns a uniform random permutation of entities (Fisher–Yates)
// without touching the input slice.
func Shuffle(entities []model.GeoEntity, rng *rand.Rand) []model.GeoEntity {
	out := append([]model.GeoEntity(nil), entities...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// MapEvent is a discrete external event driving the map session.
type MapEvent interface{ mapEvent() }

// AttemptMade carries the country code of the entity the player
// interacted with. Correctness is identity of the attempted entity with
// the target, not name equality — the code is the identity.
type AttemptMade struct {
	Code string
}

func (AttemptMade) mapEvent() {}

// ReduceMap applies one event to the session state. An attempt against an
// empty queue is a no-op display affordance.
func ReduceMap(st MapState, ev MapEvent) MapState {
	e, ok := ev.(AttemptMade)
	if !ok || len(st.Queue) == 0 {
		return st
	}

	target := st.Queue[0]
	next := st

	markers := make(map[string]Marker, len(st.Markers)+1)
	for k, v := range st.Markers {
		markers[k] = v
	}
	// Write-once: the marker is keyed by the target name and the target
	// is popped below, so a resolved entity can never be re-marked.
	if _, resolved := markers[target.Name]; !resolved {
		if e.Code == target.Code {
			markers[target.Name] = MarkerCorrect
			next.Score = st.Score + 1
		} else {
			markers[target.Name] = MarkerIncorrect
		}
	}
	next.Markers = markers

	// One attempt opportunity per entity: pop regardless of correctness.
	next.Queue = st.Queue[1:]
	return next
}

// Target returns the entity at the front of the work queue, or false when
// the session is finished.
func (s MapState) Target() (model.GeoEntity, bool) {
	if len(s.Queue) == 0 {
		return model.GeoEntity{}, false
	}
	return s.Queue[0], true
}

// Remaining is the number of entities still awaiting an attempt.
func (s MapState) Remaining() int {
	return len(s.Queue)
}

// Finished reports whether the work queue is exhausted.
func (s MapState) Finished() bool {
	return len(s.Queue) == 0
}
