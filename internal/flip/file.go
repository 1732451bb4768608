package flip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputPath derives "<dir>/<stem><suffix><ext>" from an input path.
func DefaultOutputPath(inPath, suffix string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + suffix + ext
}

// File flips the map at inPath into outPath. The output is written to a
// temporary file in the same directory and renamed into place only when the
// whole pass succeeds, so a failed or cancelled run leaves no partial map.
func File(ctx context.Context, inPath, outPath string, opts Options) (*Result, error) {
	if !opts.Axes.Any() {
		return nil, ErrNoAxis
	}
	if sameFile(inPath, outPath) {
		return nil, fmt.Errorf("flip: output %s would overwrite input", outPath)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("flip: open %s: %w", inPath, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, fmt.Errorf("flip: create dir for %s: %w", outPath, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return nil, fmt.Errorf("flip: create %s: %w", outPath, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("flip: create %s: %w", outPath, err)
	}

	res, err := Run(ctx, in, tmp, opts)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("flip: write %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return nil, fmt.Errorf("flip: rename to %s: %w", outPath, err)
	}
	return res, nil
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
