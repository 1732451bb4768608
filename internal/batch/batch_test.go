package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quake-map-flipper/internal/flip"
	"quake-map-flipper/internal/preview"
)

const roomMap = `{
"classname" "worldspawn"
"message" "Room"
{
( -64 -64 -16 ) ( -64 -63 -16 ) ( -64 -64 -15 ) WALL 0 0 0 1 1
( 0 0 0 ) ( 1 b 0 ) ( 2 2 0 ) WALL 0 0 0 1 1
}
}
{
"classname" "info_player_start"
"origin" "16 32 24"
}
`

func writeMaps(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(roomMap), 0644))
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeMaps(t, dir, "e1m2.map", "e1m1.MAP", "e1m1_flipped.map", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.map"), 0755))

	paths, err := Discover(dir, "_flipped")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "e1m1.MAP"),
		filepath.Join(dir, "e1m2.map"),
	}, paths)

	_, err = Discover(filepath.Join(dir, "missing"), "_flipped")
	assert.Error(t, err)
}

func TestPlan(t *testing.T) {
	jobs := Plan([]string{filepath.Join("maps", "e1m1.map")}, "", "_flipped")
	assert.Equal(t, filepath.Join("maps", "e1m1_flipped.map"), jobs[0].Output)

	jobs = Plan([]string{filepath.Join("maps", "e1m1.map")}, "out", "_x")
	assert.Equal(t, filepath.Join("out", "e1m1_x.map"), jobs[0].Output)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeMaps(t, dir, "a.map", "b.map", "c.map")
	inputs, err := Discover(dir, "_flipped")
	require.NoError(t, err)

	jobs := Plan(inputs, filepath.Join(dir, "out"), "_flipped")
	jobs = append(jobs, Job{Input: filepath.Join(dir, "missing.map"), Output: filepath.Join(dir, "out", "missing_flipped.map")})

	cfg := Config{
		Options: flip.DefaultOptions(flip.Axes{X: true}),
		Workers: 2,
		Preview: &preview.Options{Size: 32, Supersample: 1, Format: preview.FormatPNG},
		Logger:  zap.NewNop(),
	}
	results := Run(context.Background(), cfg, jobs)
	require.Len(t, results, 4)

	for i, r := range results[:3] {
		assert.True(t, r.Success, "job %d: %s", i, r.Error)
		assert.Equal(t, jobs[i].Input, r.Input)
		assert.Len(t, r.Diagnostics, 1)
		assert.Equal(t, 6, r.Diagnostics[0].Line)
		assert.Equal(t, 1, r.Stats.Planes)
		assert.FileExists(t, r.Output)
		assert.FileExists(t, r.Preview)
	}

	out, err := os.ReadFile(results[0].Output)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"message" "Room Flipped"`)
	assert.Contains(t, string(out), `"origin" "-16 32 24"`)

	assert.False(t, results[3].Success)
	assert.NotEmpty(t, results[3].Error)
}

func TestRunRefusesWithoutAxis(t *testing.T) {
	dir := t.TempDir()
	writeMaps(t, dir, "a.map")
	jobs := Plan([]string{filepath.Join(dir, "a.map")}, "", "_flipped")

	results := Run(context.Background(), Config{Workers: 1}, jobs)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "no axis")
	assert.NoFileExists(t, jobs[0].Output)
}

func TestManifest(t *testing.T) {
	results := []Result{
		{Input: "a.map", Output: "a_flipped.map", Success: true},
		{Input: "b.map", Error: "boom"},
	}
	m := NewManifest(flip.Axes{X: true, Z: true}, results)
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Succeeded)
	assert.Equal(t, 1, m.Failed)
	assert.Equal(t, "xz", m.Axes)

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, m.RunID, got.RunID)
	assert.Len(t, got.Maps, 2)
}
