package audiogram

// Frequencies is the fixed ordered set of plottable frequencies in Hz.
// The interactive surface never accepts a frequency outside this set.
var Frequencies = []int{250, 500, 1000, 2000, 3000, 4000, 6000, 8000}

// GridLevels enumerates the dB HL values that receive a horizontal grid line.
// Plotted intensities may fall on any multiple of 5 within the range, not only
// on these values.
var GridLevels = []int{-10, 0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}

// Logical drawing-surface dimensions. Rendered size may differ; pointer input
// is normalized back to this space before snapping.
const (
	SurfaceWidth  = 600.0
	SurfaceHeight = 400.0

	PaddingTop    = 40.0
	PaddingRight  = 30.0
	PaddingBottom = 40.0
	PaddingLeft   = 50.0
)

// Intensity domain in dB HL.
const (
	MinIntensity  = -10
	MaxIntensity  = 120
	IntensityStep = 5
)

// Effective plotting rectangle.
const (
	plotWidth  = SurfaceWidth - PaddingLeft - PaddingRight
	plotHeight = SurfaceHeight - PaddingTop - PaddingBottom
)

// FrequencyRank returns the zero-based rank of freq in Frequencies,
// or false if freq is not a standard audiometric frequency.
func FrequencyRank(freq int) (int, bool) {
	for i, f := range Frequencies {
		if f == freq {
			return i, true
		}
	}
	return 0, false
}

// FrequencyToX maps a frequency to its column position on the logical surface.
// Columns are evenly spaced: the axis is an ordinal scale over the fixed
// frequency list, not a continuous Hz axis. A frequency outside the set has no
// column of its own and collapses to the left edge; callers are expected to
// pass only listed frequencies.
func FrequencyToX(freq int) float64 {
	rank, ok := FrequencyRank(freq)
	if !ok {
		return PaddingLeft
	}
	return PaddingLeft + float64(rank)*(plotWidth/float64(len(Frequencies)-1))
}

// IntensityToY maps an intensity in dB HL to its vertical position. Larger
// values (more severe loss) map further down, per audiometric convention.
func IntensityToY(db int) float64 {
	normalized := float64(db - MinIntensity)
	return PaddingTop + (normalized/float64(MaxIntensity-MinIntensity))*plotHeight
}

// intensityFromY inverts the linear Y mapping, returning a raw, non-quantized
// dB value. Quantization and range checking belong to the snapping step.
func intensityFromY(y float64) float64 {
	return (y-PaddingTop)/plotHeight*float64(MaxIntensity-MinIntensity) + MinIntensity
}
