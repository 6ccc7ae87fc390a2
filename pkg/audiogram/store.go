package audiogram

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Ear selects which ear a threshold map belongs to. It determines symbol color
// and left/right semantics, not the valid frequency/intensity domain.
type Ear string

const (
	EarRight Ear = "right"
	EarLeft  Ear = "left"
)

// Conduction selects the measurement pathway. Air-conduction points are joined
// by a line when rendered; bone-conduction points are not.
type Conduction string

const (
	ConductionAir  Conduction = "air"
	ConductionBone Conduction = "bone"
)

// ThresholdMap holds at most one intensity per standard frequency. Slots are
// indexed by the frequency's rank in Frequencies, so a frequency outside the
// fixed set is unaddressable by construction, and "not yet measured" is an
// explicit per-slot state rather than key absence.
//
// The zero value is an empty map, ready to use.
type ThresholdMap struct {
	levels [8]int
	set    [8]bool
}

// ValidIntensity reports whether db is a multiple of 5 within [-10, 120].
func ValidIntensity(db int) bool {
	return db >= MinIntensity && db <= MaxIntensity && db%IntensityStep == 0
}

// Set records the threshold for freq, overwriting any previous value at that
// frequency (last write wins; there is no history of prior values). It returns
// false without mutating the map if freq is not a standard frequency or db is
// outside the valid domain.
func (m *ThresholdMap) Set(freq, db int) bool {
	rank, ok := FrequencyRank(freq)
	if !ok || !ValidIntensity(db) {
		return false
	}
	m.levels[rank] = db
	m.set[rank] = true
	return true
}

// Get returns the threshold recorded at freq, if any.
func (m *ThresholdMap) Get(freq int) (int, bool) {
	rank, ok := FrequencyRank(freq)
	if !ok || !m.set[rank] {
		return 0, false
	}
	return m.levels[rank], true
}

// Len returns the number of frequencies with a recorded threshold.
func (m *ThresholdMap) Len() int {
	n := 0
	for _, s := range m.set {
		if s {
			n++
		}
	}
	return n
}

// Points returns the recorded thresholds in ascending frequency order.
func (m *ThresholdMap) Points() []Point {
	points := make([]Point, 0, len(Frequencies))
	for rank, f := range Frequencies {
		if m.set[rank] {
			points = append(points, Point{Frequency: f, Intensity: m.levels[rank]})
		}
	}
	return points
}

// MarshalJSON serializes the map in the persisted shape: an object keyed by
// the frequency as text, absent frequencies simply absent, never null.
func (m ThresholdMap) MarshalJSON() ([]byte, error) {
	obj := make(map[string]int, len(Frequencies))
	for rank, f := range Frequencies {
		if m.set[rank] {
			obj[strconv.Itoa(f)] = m.levels[rank]
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON hydrates the map from the persisted shape, rejecting entries
// that violate the domain invariants.
func (m *ThresholdMap) UnmarshalJSON(data []byte) error {
	var obj map[string]int
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	var hydrated ThresholdMap
	for key, db := range obj {
		freq, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("invalid frequency key %q: %w", key, err)
		}
		if !hydrated.Set(freq, db) {
			return fmt.Errorf("invalid threshold entry %d Hz = %d dB", freq, db)
		}
	}
	*m = hydrated
	return nil
}

// Store holds the four threshold maps of one exam, keyed by ear and
// conduction. It is owned by a single editing session; only accepted snap
// output is ever written into it.
type Store struct {
	maps [2][2]ThresholdMap
}

func earIndex(ear Ear) int {
	if ear == EarLeft {
		return 1
	}
	return 0
}

func conductionIndex(c Conduction) int {
	if c == ConductionBone {
		return 1
	}
	return 0
}

// Map returns the threshold map for one ear/conduction pane.
func (s *Store) Map(ear Ear, c Conduction) *ThresholdMap {
	return &s.maps[earIndex(ear)][conductionIndex(c)]
}

// SetPoint applies an accepted point to the selected pane.
func (s *Store) SetPoint(ear Ear, c Conduction, p Point) bool {
	return s.Map(ear, c).Set(p.Frequency, p.Intensity)
}

// Points returns the selected pane's thresholds in ascending frequency order.
func (s *Store) Points(ear Ear, c Conduction) []Point {
	return s.Map(ear, c).Points()
}
