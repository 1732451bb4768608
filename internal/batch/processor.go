package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"quake-map-flipper/internal/flip"
	"quake-map-flipper/internal/preview"
)

// Config holds all shared settings for a batch run.
type Config struct {
	Options flip.Options
	Workers int

	// Preview, when set, also renders a before/after image per map.
	Preview *preview.Options

	Logger *zap.Logger
}

// Job is one map to flip.
type Job struct {
	Input  string
	Output string
}

// Result holds the outcome of processing one map.
type Result struct {
	Input       string            `json:"input"`
	Output      string            `json:"output"`
	Preview     string            `json:"preview,omitempty"`
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	Diagnostics []flip.Diagnostic `json:"diagnostics,omitempty"`
	Stats       flip.Stats        `json:"stats"`
}

// Discover lists the .map files directly inside dir, sorted by name. Files
// that already carry suffix are skipped so outputs are never flipped again.
func Discover(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, ".map") {
			continue
		}
		if suffix != "" && strings.HasSuffix(strings.TrimSuffix(name, ext), suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// Plan maps each input to "<outDir>/<stem><suffix>.map". An empty outDir
// writes next to the input.
func Plan(inputs []string, outDir, suffix string) []Job {
	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		out := flip.DefaultOutputPath(in, suffix)
		if outDir != "" {
			out = filepath.Join(outDir, filepath.Base(out))
		}
		jobs[i] = Job{Input: in, Output: out}
	}
	return jobs
}

// Run processes all jobs using a worker pool. Results are in job order.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("batch progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("maps_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(ctx, cfg, jobs[idx], log)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(ctx context.Context, cfg Config, job Job, log *zap.Logger) Result {
	r := Result{Input: job.Input, Output: job.Output}

	opts := cfg.Options
	opts.Logger = log.With(zap.String("map", filepath.Base(job.Input)))

	res, err := flip.File(ctx, job.Input, job.Output, opts)
	if err != nil {
		r.Error = err.Error()
		log.Warn("flip failed", zap.String("input", job.Input), zap.Error(err))
		return r
	}
	r.Diagnostics = res.Diagnostics
	r.Stats = res.Stats

	if cfg.Preview != nil {
		ext := "." + cfg.Preview.Format
		path := strings.TrimSuffix(job.Output, filepath.Ext(job.Output)) + ext
		if err := preview.WriteFile(path, job.Input, job.Output, *cfg.Preview); err != nil {
			r.Error = err.Error()
			return r
		}
		r.Preview = path
	}

	r.Success = true
	return r
}
