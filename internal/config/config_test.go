package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quake-map-flipper/internal/flip"
)

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"axes": "xz",
		"workers": 3,
		"message_suffix": " (mirrored)",
		"preview": {"size": 256, "format": "png"},
		"log": {"level": "debug"}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "xz", cfg.Axes)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, " (mirrored)", cfg.MessageSuffix)
	assert.Equal(t, 256, cfg.Preview.Size)
	assert.Equal(t, "png", cfg.Preview.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
axes: y
output_dir: flipped
map_suffix: _m
preview:
  supersample: 4
log:
  format: json
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "y", cfg.Axes)
	assert.Equal(t, "flipped", cfg.OutputDir)
	assert.Equal(t, "_m", cfg.MapSuffix)
	assert.Equal(t, 4, cfg.Preview.Supersample)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, "_flipped", cfg.OutputSuffix)
	assert.Equal(t, flip.DefaultMessageSuffix, cfg.MessageSuffix)
	assert.Equal(t, flip.DefaultMapSuffix, cfg.MapSuffix)
	assert.Equal(t, "worldspawn", cfg.WorldspawnClass)
	assert.Equal(t, "trigger_changelevel", cfg.ChangelevelClass)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, Preview{Size: 512, Supersample: 2, Format: "webp"}, cfg.Preview)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{Axes: "x", Workers: 2, OutputDir: "a"}
	cfg.Resolve(Flags{Axes: "yz", Workers: 8, OutputDir: "b", PreviewFormat: "tga", LogLevel: "warn"})

	assert.Equal(t, "yz", cfg.Axes)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "b", cfg.OutputDir)
	assert.Equal(t, "tga", cfg.Preview.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestFlipOptions(t *testing.T) {
	cfg := Config{Axes: "xy"}
	cfg.Resolve(Flags{})

	opts, err := cfg.FlipOptions(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, flip.Axes{X: true, Y: true}, opts.Axes)
	assert.Equal(t, " Flipped", opts.MessageSuffix)

	cfg.Axes = "q"
	_, err = cfg.FlipOptions(nil)
	assert.Error(t, err)
}
