package audiogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapOf(entries map[int]int) *ThresholdMap {
	var m ThresholdMap
	for f, db := range entries {
		m.Set(f, db)
	}
	return &m
}

func TestPureToneAverage(t *testing.T) {
	avg, ok := PureToneAverage(mapOf(map[int]int{500: 10, 1000: 20, 2000: 30}))
	assert.True(t, ok)
	assert.Equal(t, 20, avg)

	// Rounded mean: (10+10+15)/3 = 11.67 -> 12.
	avg, ok = PureToneAverage(mapOf(map[int]int{500: 10, 1000: 10, 2000: 15}))
	assert.True(t, ok)
	assert.Equal(t, 12, avg)
}

func TestPureToneAverage_UndefinedWhenIncomplete(t *testing.T) {
	_, ok := PureToneAverage(mapOf(map[int]int{500: 10, 1000: 20}))
	assert.False(t, ok, "2000 Hz missing")

	_, ok = PureToneAverage(&ThresholdMap{})
	assert.False(t, ok)

	// Frequencies outside the averaged triple do not substitute for them.
	_, ok = PureToneAverage(mapOf(map[int]int{250: 10, 3000: 20, 4000: 30}))
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		rightAir *ThresholdMap
		leftAir  *ThresholdMap
		want     Status
	}{
		{
			name:     "right ear average above threshold",
			rightAir: mapOf(map[int]int{500: 30, 1000: 30, 2000: 30}),
			leftAir:  mapOf(map[int]int{500: 15, 1000: 15, 2000: 15}),
			want:     StatusAltered,
		},
		{
			name:     "left ear average above threshold",
			rightAir: mapOf(map[int]int{500: 10, 1000: 10, 2000: 10}),
			leftAir:  mapOf(map[int]int{500: 40, 1000: 40, 2000: 40}),
			want:     StatusAltered,
		},
		{
			name:     "both ears at the boundary",
			rightAir: mapOf(map[int]int{500: 20, 1000: 20, 2000: 20}),
			leftAir:  mapOf(map[int]int{500: 20, 1000: 20, 2000: 20}),
			want:     StatusNormal,
		},
		{
			name:     "exactly 25 is still normal",
			rightAir: mapOf(map[int]int{500: 25, 1000: 25, 2000: 25}),
			leftAir:  mapOf(map[int]int{500: 25, 1000: 25, 2000: 25}),
			want:     StatusNormal,
		},
		{
			name:     "both averages undefined",
			rightAir: &ThresholdMap{},
			leftAir:  &ThresholdMap{},
			want:     StatusNormal,
		},
		{
			name:     "one undefined, one altered",
			rightAir: &ThresholdMap{},
			leftAir:  mapOf(map[int]int{500: 50, 1000: 50, 2000: 50}),
			want:     StatusAltered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.rightAir, tt.leftAir))
		})
	}
}
