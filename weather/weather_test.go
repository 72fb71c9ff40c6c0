package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateAtEmptyTimelineDefaults(t *testing.T) {
	tl := New(nil)
	assert.Equal(t, float32(0.5), tl.StateAt(100))
}

func TestStateAtClampsAtBoundaries(t *testing.T) {
	tl := New([]Sample{{TimeSeconds: 0, Intensity: 0.2}, {TimeSeconds: 30, Intensity: 1.0}})
	assert.Equal(t, float32(0.2), tl.StateAt(-10))
	assert.Equal(t, float32(1.0), tl.StateAt(60))
}

func TestStateAtInterpolatesLinearly(t *testing.T) {
	tl := New([]Sample{{TimeSeconds: 0, Intensity: 0.0}, {TimeSeconds: 10, Intensity: 1.0}})
	assert.InDelta(t, 0.5, tl.StateAt(5), 1e-6)
}

func TestStateAtExactSampleEqualsSample(t *testing.T) {
	tl := New([]Sample{{TimeSeconds: 0, Intensity: 0.1}, {TimeSeconds: 5, Intensity: 0.9}, {TimeSeconds: 10, Intensity: 0.3}})
	assert.Equal(t, float32(0.9), tl.StateAt(5))
}

func TestNewSortsUnorderedSamples(t *testing.T) {
	tl := New([]Sample{{TimeSeconds: 10, Intensity: 1.0}, {TimeSeconds: 0, Intensity: 0.0}})
	assert.InDelta(t, 0.5, tl.StateAt(5), 1e-6)
}

func TestCategoryOfThresholds(t *testing.T) {
	assert.Equal(t, Clear, CategoryOf(0))
	assert.Equal(t, Clear, CategoryOf(0.32))
	assert.Equal(t, Cloudy, CategoryOf(0.33))
	assert.Equal(t, Cloudy, CategoryOf(0.65))
	assert.Equal(t, Rain, CategoryOf(0.66))
	assert.Equal(t, Rain, CategoryOf(1.0))
}
