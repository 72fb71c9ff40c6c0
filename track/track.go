// Package track models the sampled track loop a race runs on: its geometry
// samples, lap length, and weather timeline. Ported from original_source's
// models/track.rs, with a curvature binary codec and candidate-root asset
// lookup of its own.
package track

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/yatahunt/racecore/raceerr"
	"github.com/yatahunt/racecore/weather"
)

// Point is one sampled point along the lap: position and local curvature.
type Point struct {
	X, Y      float32
	Curvature float32
}

// Track is the authoritative description of the lap cars race around.
type Track struct {
	ID             string
	Name           string
	Description    string
	Laps           uint32
	LapLengthKm    float32
	SampledTrack   []Point
	Weather        weather.Timeline
	Wetness        float32 // [0,1]
	SVGStartOffset float32 // parsed, not consumed by the tick (open question #3)
}

// ClampWetness clamps Wetness into [0,1].
func (t *Track) ClampWetness() {
	if t.Wetness < 0 {
		t.Wetness = 0
	}
	if t.Wetness > 1 {
		t.Wetness = 1
	}
}

// PointAtDistance maps lapRatio in [0,1) to the nearest sample on the closed
// loop: round(lapRatio * N) mod N. No interpolation.
func (t Track) PointAtDistance(lapRatio float32) Point {
	n := len(t.SampledTrack)
	if n == 0 {
		return Point{}
	}
	idx := int(math.Round(float64(lapRatio) * float64(n)))
	idx %= n
	if idx < 0 {
		idx += n
	}
	return t.SampledTrack[idx]
}

// ---- curvature.bin codec ----
//
// Binary, little-endian: a 4-byte int32 count N, followed by
// N * (float32 x, float32 y, float32 curvature).

// EncodeCurvature writes points in the curvature.bin format.
func EncodeCurvature(w io.Writer, points []Point) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(points))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for _, p := range points {
		vals := [3]float32{p.X, p.Y, p.Curvature}
		if err := binary.Write(w, binary.LittleEndian, vals); err != nil {
			return fmt.Errorf("write point: %w", err)
		}
	}
	return nil
}

// DecodeCurvature reads the curvature.bin format. A buffer shorter than
// 4+12*N bytes is a format error.
func DecodeCurvature(r io.Reader) ([]Point, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("read count: %w", err))
	}
	if count < 0 {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("negative point count %d", count))
	}
	points := make([]Point, count)
	for i := range points {
		var vals [3]float32
		if err := binary.Read(r, binary.LittleEndian, &vals); err != nil {
			return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("curvature file truncated at point %d: %w", i, err))
		}
		points[i] = Point{X: vals[0], Y: vals[1], Curvature: vals[2]}
	}
	return points, nil
}

// LoadCurvatureFile reads and decodes a curvature.bin file at path.
func LoadCurvatureFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, raceerr.Wrap(raceerr.Load, fmt.Errorf("open curvature file: %w", err))
	}
	defer f.Close()
	return DecodeCurvature(f)
}
