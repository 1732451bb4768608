package flip

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("maps", "e1m1_flipped.map"), DefaultOutputPath(filepath.Join("maps", "e1m1.map"), "_flipped"))
	assert.Equal(t, "start_x", DefaultOutputPath("start", "_x"))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "e1m1.map")
	require.NoError(t, os.WriteFile(in, []byte(sampleMap), 0644))

	out := filepath.Join(dir, "out", "e1m1_flipped.map")
	res, err := File(context.Background(), in, out, DefaultOptions(Axes{X: true}))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.Planes)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"origin" "32 48 24"`)

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be gone")
}

func TestFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.map")
	_, err := File(context.Background(), filepath.Join(dir, "nope.map"), out, DefaultOptions(Axes{Y: true}))
	require.Error(t, err)
	assert.NoFileExists(t, out)
}

func TestFileRefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "e1m1.map")
	require.NoError(t, os.WriteFile(in, []byte(sampleMap), 0644))

	_, err := File(context.Background(), in, in, DefaultOptions(Axes{Y: true}))
	require.Error(t, err)

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, sampleMap, string(data))
}

func TestFileCancelledLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "e1m1.map")
	require.NoError(t, os.WriteFile(in, []byte(sampleMap), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(dir, "flipped.map")
	_, err := File(ctx, in, out, DefaultOptions(Axes{Z: true}))
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
