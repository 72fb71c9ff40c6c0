package track

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointAtDistanceBoundaries(t *testing.T) {
	points := make([]Point, 100)
	for i := range points {
		points[i] = Point{X: float32(i)}
	}
	trk := Track{SampledTrack: points}
	assert.Equal(t, trk.SampledTrack[0], trk.PointAtDistance(0.0))
	// round(0.99*100) mod 100 lands on the last sample for this N.
	assert.Equal(t, trk.SampledTrack[99], trk.PointAtDistance(0.99))
}

func TestPointAtDistanceRoundsToNearestAndWrapsAtTheSeam(t *testing.T) {
	trk := Track{SampledTrack: []Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}}}
	// round(0.7*4) = 3 -> last sample.
	assert.Equal(t, trk.SampledTrack[3], trk.PointAtDistance(0.7))
	// round(0.95*4) = 4 -> wraps to the first sample, matching the
	// original round-then-mod behaviour rather than a floor.
	assert.Equal(t, trk.SampledTrack[0], trk.PointAtDistance(0.95))
}

func TestPointAtDistanceEmptyTrack(t *testing.T) {
	trk := Track{}
	assert.Equal(t, Point{}, trk.PointAtDistance(0.5))
}

func TestPointAtDistanceWrapsNegativeIndex(t *testing.T) {
	trk := Track{SampledTrack: []Point{{X: 0}, {X: 1}, {X: 2}}}
	p := trk.PointAtDistance(-0.01)
	assert.Contains(t, trk.SampledTrack, p)
}

func TestCurvatureRoundTrip(t *testing.T) {
	points := []Point{
		{X: 1.5, Y: -2.5, Curvature: 0.1},
		{X: 3, Y: 4, Curvature: -0.2},
		{X: 0, Y: 0, Curvature: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeCurvature(&buf, points))

	got, err := DecodeCurvature(&buf)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestDecodeCurvatureTruncatedIsLoadError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCurvature(&buf, []Point{{X: 1, Y: 2, Curvature: 3}}))
	truncated := buf.Bytes()[:len(buf.Bytes())-4]

	_, err := DecodeCurvature(bytes.NewReader(truncated))
	require.Error(t, err)
}

func TestClampWetness(t *testing.T) {
	trk := Track{Wetness: 1.5}
	trk.ClampWetness()
	assert.Equal(t, float32(1), trk.Wetness)

	trk.Wetness = -0.5
	trk.ClampWetness()
	assert.Equal(t, float32(0), trk.Wetness)
}
