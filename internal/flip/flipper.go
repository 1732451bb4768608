package flip

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"quake-map-flipper/internal/mapfile"
)

// Defaults used for any empty Options field.
const (
	DefaultMessageSuffix    = " Flipped"
	DefaultMapSuffix        = "_flipped"
	DefaultWorldspawnClass  = "worldspawn"
	DefaultChangelevelClass = "trigger_changelevel"
)

// Options configures one flip run.
type Options struct {
	Axes Axes

	// MessageSuffix is appended to the worldspawn "message".
	MessageSuffix string
	// MapSuffix is appended to a changelevel trigger's "map" so it points at
	// the flipped version of the next level.
	MapSuffix string

	WorldspawnClass  string
	ChangelevelClass string

	Logger *zap.Logger
}

// DefaultOptions returns Options for axes with every other field defaulted.
func DefaultOptions(axes Axes) Options {
	return Options{Axes: axes}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.MessageSuffix == "" {
		o.MessageSuffix = DefaultMessageSuffix
	}
	if o.MapSuffix == "" {
		o.MapSuffix = DefaultMapSuffix
	}
	if o.WorldspawnClass == "" {
		o.WorldspawnClass = DefaultWorldspawnClass
	}
	if o.ChangelevelClass == "" {
		o.ChangelevelClass = DefaultChangelevelClass
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Diagnostic describes a line that looked like a plane or property but could
// not be parsed. The line is written through unchanged.
type Diagnostic struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// Stats counts what a run saw and rewrote.
type Stats struct {
	Lines      int `json:"lines"`
	Entities   int `json:"entities"`
	Brushes    int `json:"brushes"`
	Planes     int `json:"planes"`
	Properties int `json:"properties"`
	Unbalanced int `json:"unbalanced_closers"`
}

// Result is returned by a successful run.
type Result struct {
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats"`
}

// Run streams r to w, mirroring every recognized line across opts.Axes.
// Unchanged lines, including their terminators, are copied byte for byte.
//
// Output written before an error is partial and should be discarded; the
// only errors are ErrNoAxis, read/write failures and context cancellation.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) (*Result, error) {
	if !opts.Axes.Any() {
		return nil, ErrNoAxis
	}
	opts = opts.withDefaults()
	log := opts.Logger

	rd := mapfile.NewReader(r)
	bw := bufio.NewWriter(w)
	res := &Result{}
	var st mapfile.State

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("flip: %w", err)
		}

		text, eol, n, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flip: read input line %d: %w", n+1, err)
		}

		line := st.Classify(text)
		out := res.apply(n, line, &st, opts)

		if _, err := bw.WriteString(out); err != nil {
			return nil, fmt.Errorf("flip: write output line %d: %w", n, err)
		}
		if _, err := bw.WriteString(eol); err != nil {
			return nil, fmt.Errorf("flip: write output line %d: %w", n, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("flip: write output: %w", err)
	}

	log.Debug("flip pass complete",
		zap.Stringer("axes", opts.Axes),
		zap.Int("lines", res.Stats.Lines),
		zap.Int("planes", res.Stats.Planes),
		zap.Int("properties", res.Stats.Properties),
		zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}

// apply returns the text to write for one classified line and updates stats.
func (res *Result) apply(n int, line mapfile.Line, st *mapfile.State, opts Options) string {
	res.Stats.Lines++

	switch line.Kind {
	case mapfile.KindBraceOpen:
		switch line.Depth {
		case 1:
			res.Stats.Entities++
		case 2:
			res.Stats.Brushes++
		}

	case mapfile.KindBraceClose:
		if line.Unbalanced {
			res.Stats.Unbalanced++
			opts.Logger.Debug("closing brace at depth 0", zap.Int("line", n))
		}

	case mapfile.KindProperty:
		value, rewrite, err := FlipProperty(line.Property, st.Classname, opts)
		if err != nil {
			res.diagnose(n, line.Text, err, opts.Logger)
			break
		}
		if rewrite {
			res.Stats.Properties++
			return formatProperty(line.Indent, line.Property.Key, value)
		}

	case mapfile.KindPlane:
		if line.Err != nil {
			res.diagnose(n, line.Text, fmt.Errorf("plane %w", line.Err), opts.Logger)
			break
		}
		res.Stats.Planes++
		return FormatPlane(line.Indent, FlipPlane(line.Plane, opts.Axes))
	}

	return line.Text
}

func (res *Result) diagnose(n int, text string, err error, log *zap.Logger) {
	d := Diagnostic{Line: n, Content: text, Reason: err.Error()}
	res.Diagnostics = append(res.Diagnostics, d)
	log.Warn("line left unchanged", zap.Int("line", n), zap.String("reason", d.Reason))
}
