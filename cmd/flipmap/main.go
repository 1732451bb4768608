package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"quake-map-flipper/internal/batch"
	"quake-map-flipper/internal/config"
	"quake-map-flipper/internal/flip"
	"quake-map-flipper/internal/logging"
	"quake-map-flipper/internal/preview"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	in := flag.String("in", "", "Input .map file")
	out := flag.String("out", "", "Output .map file (default: <input>_flipped.map)")
	dir := flag.String("dir", "", "Flip every .map file in this directory")
	outputDir := flag.String("output", "", "Output directory for -dir (default: next to inputs)")
	flipX := flag.Bool("x", false, "Mirror across the X axis")
	flipY := flag.Bool("y", false, "Mirror across the Y axis")
	flipZ := flag.Bool("z", false, "Mirror across the Z axis")
	workers := flag.Int("workers", 0, "Number of worker goroutines for -dir (default: NumCPU)")
	previewPath := flag.String("preview", "", "Write a before/after preview image to this path")
	previews := flag.Bool("previews", false, "With -dir, write a preview next to every output")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "", "Log format: console or json")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Axes:          axesFlag(*flipX, *flipY, *flipZ),
		OutputDir:     *outputDir,
		Workers:       *workers,
		PreviewFormat: preview.FormatFromPath(*previewPath, ""),
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
	})

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	opts, err := cfg.FlipOptions(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !opts.Axes.Any() {
		fmt.Fprintln(os.Stderr, "Error: select at least one axis with -x, -y or -z.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	previewOpts := preview.Options{
		Size:        cfg.Preview.Size,
		Supersample: cfg.Preview.Supersample,
		Format:      cfg.Preview.Format,
	}

	code := 0
	switch {
	case *dir != "":
		var po *preview.Options
		if *previews {
			po = &previewOpts
		}
		code = runBatch(ctx, log, cfg, opts, *dir, po)
	case *in != "":
		code = runSingle(ctx, log, cfg, opts, *in, *out, *previewPath, previewOpts)
	default:
		fmt.Fprintln(os.Stderr, "Error: specify -in <file.map> or -dir <directory>.")
		flag.Usage()
		code = 2
	}

	stop()
	_ = log.Sync()
	os.Exit(code)
}

// axesFlag returns "" when no axis flag is set so the config file's axes apply.
func axesFlag(x, y, z bool) string {
	a := flip.Axes{X: x, Y: y, Z: z}
	if !a.Any() {
		return ""
	}
	return a.String()
}

func runSingle(ctx context.Context, log *zap.Logger, cfg config.Config, opts flip.Options, in, out, previewPath string, po preview.Options) int {
	if out == "" {
		out = flip.DefaultOutputPath(in, cfg.OutputSuffix)
	}

	start := time.Now()
	res, err := flip.File(ctx, in, out, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Cancelled; no output written.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	log.Info("map flipped",
		zap.String("input", in),
		zap.String("output", out),
		zap.Stringer("axes", opts.Axes),
		zap.Int("entities", res.Stats.Entities),
		zap.Int("brushes", res.Stats.Brushes),
		zap.Int("planes", res.Stats.Planes),
		zap.Int("properties", res.Stats.Properties),
		zap.Int("skipped_lines", len(res.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)))

	if res.Stats.Unbalanced > 0 {
		log.Warn("unbalanced closing braces", zap.Int("count", res.Stats.Unbalanced))
	}

	if previewPath != "" {
		if err := preview.WriteFile(previewPath, in, out, po); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: preview failed: %v\n", err)
		} else {
			log.Info("preview written", zap.String("path", previewPath))
		}
	}

	fmt.Println("Texture alignment and angle flipping are heuristic; test the flipped map.")
	return 0
}

func runBatch(ctx context.Context, log *zap.Logger, cfg config.Config, opts flip.Options, dir string, po *preview.Options) int {
	inputs, err := batch.Discover(dir, cfg.OutputSuffix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(inputs) == 0 {
		fmt.Println("No maps to flip.")
		return 0
	}

	outDir := cfg.OutputDir
	jobs := batch.Plan(inputs, outDir, cfg.OutputSuffix)

	log.Info("batch starting",
		zap.Int("maps", len(jobs)),
		zap.Int("workers", cfg.Workers),
		zap.Stringer("axes", opts.Axes))

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		Options: opts,
		Workers: cfg.Workers,
		Preview: po,
		Logger:  log,
	}, jobs)

	manifest := batch.NewManifest(opts.Axes, results)
	log.Info("batch done",
		zap.String("run_id", manifest.RunID),
		zap.Int("succeeded", manifest.Succeeded),
		zap.Int("failed", manifest.Failed),
		zap.Duration("elapsed", time.Since(start)))

	// Write manifest
	manifestDir := outDir
	if manifestDir == "" {
		manifestDir = dir
	}
	manifestPath := filepath.Join(manifestDir, "manifest.json")
	if err := os.MkdirAll(manifestDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest dir: %v\n", err)
	} else if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		log.Info("manifest written", zap.String("path", manifestPath))
	}

	if manifest.Failed > 0 {
		limit := 20
		for _, r := range results {
			if r.Success {
				continue
			}
			if limit == 0 {
				break
			}
			fmt.Fprintf(os.Stderr, "  %s: %s\n", r.Input, r.Error)
			limit--
		}
		return 1
	}
	return 0
}
