package track

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTrackFixture(t *testing.T, root, trackID string) {
	t.Helper()
	dir := filepath.Join(root, trackID)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	cfg := config{ID: trackID, Name: "Fixture Circuit", Laps: 3, LapLengthKm: 5, SVGStartOffset: 0.1}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.json"), raw, 0o644))

	var buf bytes.Buffer
	require.NoError(t, EncodeCurvature(&buf, []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curvature.bin"), buf.Bytes(), 0o644))
}

func TestResolveTrackFolderUsesEnvVarFirst(t *testing.T) {
	root := t.TempDir()
	writeTrackFixture(t, root, "demo")
	t.Setenv(AssetsEnvVar, root)

	folder, err := ResolveTrackFolder("demo")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "demo"), folder)
}

func TestResolveTrackFolderMissingIsLoadError(t *testing.T) {
	t.Setenv(AssetsEnvVar, t.TempDir())
	_, err := ResolveTrackFolder("nonexistent-track")
	require.Error(t, err)
}

func TestLoadFolderParsesConfigAndCurvature(t *testing.T) {
	root := t.TempDir()
	writeTrackFixture(t, root, "demo")

	trk, err := LoadFolder(filepath.Join(root, "demo"))
	require.NoError(t, err)
	require.Equal(t, "demo", trk.ID)
	require.Equal(t, uint32(3), trk.Laps)
	require.Len(t, trk.SampledTrack, 2)
	require.Equal(t, float32(0.1), trk.SVGStartOffset)
}

func TestLoadFolderRejectsEmptySampledTrack(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "empty")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	cfg := config{ID: "empty", Name: "Empty", Laps: 1, LapLengthKm: 1}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "track.json"), raw, 0o644))

	var buf bytes.Buffer
	require.NoError(t, EncodeCurvature(&buf, nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "curvature.bin"), buf.Bytes(), 0o644))

	_, err = LoadFolder(dir)
	require.Error(t, err)
}

func TestLoadResolvesAndLoadsInOneCall(t *testing.T) {
	root := t.TempDir()
	writeTrackFixture(t, root, "demo")
	t.Setenv(AssetsEnvVar, root)

	trk, err := Load("demo")
	require.NoError(t, err)
	require.Equal(t, "demo", trk.ID)
}
