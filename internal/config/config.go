package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"quake-map-flipper/internal/flip"
	"quake-map-flipper/internal/logging"
)

// Config holds all configurable flip, batch and preview settings.
type Config struct {
	// Axes to mirror, e.g. "x" or "xz".
	Axes string `json:"axes" yaml:"axes"`

	// Output naming
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`

	// Entity rewrites
	MessageSuffix    string `json:"message_suffix" yaml:"message_suffix"`
	MapSuffix        string `json:"map_suffix" yaml:"map_suffix"`
	WorldspawnClass  string `json:"worldspawn_class" yaml:"worldspawn_class"`
	ChangelevelClass string `json:"changelevel_class" yaml:"changelevel_class"`

	Workers int `json:"workers" yaml:"workers"`

	Preview Preview        `json:"preview" yaml:"preview"`
	Log     logging.Config `json:"log" yaml:"log"`
}

// Preview holds preview image settings.
type Preview struct {
	Size        int    `json:"size" yaml:"size"`
	Supersample int    `json:"supersample" yaml:"supersample"`
	Format      string `json:"format" yaml:"format"` // webp, png or tga
}

// Load reads a JSON or YAML (.yaml/.yml) config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Axes          string
	OutputDir     string
	Workers       int
	PreviewFormat string
	LogLevel      string
	LogFormat     string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Axes != "" {
		c.Axes = flags.Axes
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.PreviewFormat != "" {
		c.Preview.Format = flags.PreviewFormat
	}
	if flags.LogLevel != "" {
		c.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.Log.Format = flags.LogFormat
	}

	if c.OutputSuffix == "" {
		c.OutputSuffix = "_flipped"
	}
	if c.MessageSuffix == "" {
		c.MessageSuffix = flip.DefaultMessageSuffix
	}
	if c.MapSuffix == "" {
		c.MapSuffix = flip.DefaultMapSuffix
	}
	if c.WorldspawnClass == "" {
		c.WorldspawnClass = flip.DefaultWorldspawnClass
	}
	if c.ChangelevelClass == "" {
		c.ChangelevelClass = flip.DefaultChangelevelClass
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	// Defaults for preview settings
	if c.Preview.Size <= 0 {
		c.Preview.Size = 512
	}
	if c.Preview.Supersample <= 0 {
		c.Preview.Supersample = 2
	}
	if c.Preview.Format == "" {
		c.Preview.Format = "webp"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// FlipOptions builds the options for a flip run. It fails when Axes names an
// unknown axis; an empty selection is left for flip.Run to refuse.
func (c *Config) FlipOptions(log *zap.Logger) (flip.Options, error) {
	axes, err := flip.ParseAxes(c.Axes)
	if err != nil {
		return flip.Options{}, fmt.Errorf("config: axes: %w", err)
	}
	return flip.Options{
		Axes:             axes,
		MessageSuffix:    c.MessageSuffix,
		MapSuffix:        c.MapSuffix,
		WorldspawnClass:  c.WorldspawnClass,
		ChangelevelClass: c.ChangelevelClass,
		Logger:           log,
	}, nil
}
