package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yatahunt/racecore/raceerr"
	"github.com/yatahunt/racecore/weather"
)

// config mirrors track.json: { id, name, description?, laps, lap_length_km,
// svg_start_offset }.
type config struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Laps           uint32  `json:"laps"`
	LapLengthKm    float32 `json:"lap_length_km"`
	SVGStartOffset float32 `json:"svg_start_offset"`
}

// DefaultWeather is used for a freshly loaded track until a race-specific
// weather timeline is assigned (the original defaults to a two-hour-ish
// clear-then-drying timeline; here we default to a flat 0.5/cloudy timeline
// since the config file format carries no weather data of its own).
func DefaultWeather() weather.Timeline {
	return weather.New([]weather.Sample{{TimeSeconds: 0, Intensity: 0.5}})
}

// AssetsEnvVar is the environment variable consulted first when resolving
// the track assets root.
const AssetsEnvVar = "RACECORE_ASSETS_ROOT"

// candidateRoots returns, in priority order, the directories searched for a
// track's asset folder: an explicit env var, then relative fallbacks, then a
// fixed absolute path. The first candidate containing trackID/track.json
// wins.
func candidateRoots() []string {
	roots := []string{}
	if v := os.Getenv(AssetsEnvVar); v != "" {
		roots = append(roots, v)
	}
	roots = append(roots,
		"./assets/tracks",
		"../assets/tracks",
		"/app/assets/tracks",
	)
	return roots
}

// ResolveTrackFolder searches the candidate asset roots for trackID and
// returns the first matching folder, or a Load error if none resolve.
func ResolveTrackFolder(trackID string) (string, error) {
	for _, root := range candidateRoots() {
		folder := filepath.Join(root, trackID)
		if _, err := os.Stat(filepath.Join(folder, "track.json")); err == nil {
			return folder, nil
		}
	}
	return "", raceerr.Wrap(raceerr.Load, fmt.Errorf("track %q not found under any asset root", trackID))
}

// LoadFolder loads a Track from an already-resolved asset folder containing
// track.json and curvature.bin.
func LoadFolder(folder string) (Track, error) {
	raw, err := os.ReadFile(filepath.Join(folder, "track.json"))
	if err != nil {
		return Track{}, raceerr.Wrap(raceerr.Load, fmt.Errorf("read track.json: %w", err))
	}
	var cfg config
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&cfg); err != nil {
		return Track{}, raceerr.Wrap(raceerr.Load, fmt.Errorf("parse track.json: %w", err))
	}

	points, err := LoadCurvatureFile(filepath.Join(folder, "curvature.bin"))
	if err != nil {
		return Track{}, err
	}
	if len(points) == 0 {
		return Track{}, raceerr.Wrap(raceerr.Load, fmt.Errorf("track %q has an empty sampled track", cfg.ID))
	}

	return Track{
		ID:             cfg.ID,
		Name:           cfg.Name,
		Description:    cfg.Description,
		Laps:           cfg.Laps,
		LapLengthKm:    cfg.LapLengthKm,
		SampledTrack:   points,
		Weather:        DefaultWeather(),
		Wetness:        0,
		SVGStartOffset: cfg.SVGStartOffset,
	}, nil
}

// Load resolves trackID under the candidate asset roots and loads it.
func Load(trackID string) (Track, error) {
	folder, err := ResolveTrackFolder(trackID)
	if err != nil {
		return Track{}, err
	}
	return LoadFolder(folder)
}
