package audiogram

import "math"

// Status classifies an exam from its air-conduction data.
type Status string

const (
	StatusNormal  Status = "normal"
	StatusAltered Status = "altered"
)

// ptaFrequencies are the frequencies entering the pure-tone average.
var ptaFrequencies = []int{500, 1000, 2000}

// alteredThreshold is the pure-tone average above which an ear is considered
// altered, in dB HL.
const alteredThreshold = 25

// PureToneAverage returns the rounded mean of the air-conduction thresholds at
// 500, 1000 and 2000 Hz. If any of the three is missing the average is
// undefined and ok is false; callers display a placeholder, never zero.
func PureToneAverage(air *ThresholdMap) (avg int, ok bool) {
	sum := 0
	for _, f := range ptaFrequencies {
		db, present := air.Get(f)
		if !present {
			return 0, false
		}
		sum += db
	}
	return int(math.Round(float64(sum) / float64(len(ptaFrequencies)))), true
}

// Classify derives the exam status from the two air-conduction maps. The exam
// is altered when either ear has a defined pure-tone average above 25 dB HL.
// An exam where both averages are undefined classifies as normal.
func Classify(rightAir, leftAir *ThresholdMap) Status {
	if right, ok := PureToneAverage(rightAir); ok && right > alteredThreshold {
		return StatusAltered
	}
	if left, ok := PureToneAverage(leftAir); ok && left > alteredThreshold {
		return StatusAltered
	}
	return StatusNormal
}
