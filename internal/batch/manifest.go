package batch

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"quake-map-flipper/internal/flip"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	Axes      string    `json:"axes"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Maps      []Result  `json:"maps"`
}

// NewManifest summarizes results under a fresh run id.
func NewManifest(axes flip.Axes, results []Result) Manifest {
	m := Manifest{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Axes:      axes.String(),
		Maps:      results,
	}
	for _, r := range results {
		if r.Success {
			m.Succeeded++
		} else {
			m.Failed++
		}
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
