package audiogram

import "math"

// Point is a single plotted hearing threshold.
type Point struct {
	Frequency int `json:"freq" doc:"Frequency in Hz"`
	Intensity int `json:"db" doc:"Hearing threshold in dB HL"`
}

// Snap converts a raw pointer position into the nearest clinically valid
// point. The position is given in the coordinate space of the rendered
// surface, whose actual size may differ from the logical 600x400 due to
// responsive scaling; it is normalized back to logical space first.
//
// The frequency snaps to the nearest column, lowest frequency winning ties.
// The intensity snaps to the nearest multiple of 5 dB; if the result falls
// outside [-10, 120] no point is emitted and ok is false. That is an expected
// outcome for clicks near the plot edges, not an error.
func Snap(x, y, renderedWidth, renderedHeight float64) (p Point, ok bool) {
	if renderedWidth <= 0 || renderedHeight <= 0 {
		return Point{}, false
	}

	logicalX := x * (SurfaceWidth / renderedWidth)
	logicalY := y * (SurfaceHeight / renderedHeight)

	closest := Frequencies[0]
	minDist := math.Inf(1)
	for _, f := range Frequencies {
		if d := math.Abs(FrequencyToX(f) - logicalX); d < minDist {
			minDist = d
			closest = f
		}
	}

	raw := intensityFromY(logicalY)
	db := int(math.Round(raw/IntensityStep)) * IntensityStep
	if db < MinIntensity || db > MaxIntensity {
		return Point{}, false
	}

	return Point{Frequency: closest, Intensity: db}, true
}
