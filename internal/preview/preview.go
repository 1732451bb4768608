// Package preview renders top-down wireframe comparisons of a map before and
// after flipping, so a mirrored layout can be checked without loading an editor.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"quake-map-flipper/internal/mapfile"
	"quake-map-flipper/internal/postprocess"
	"quake-map-flipper/internal/raster"
)

// Options controls preview size and encoding.
type Options struct {
	Size        int    // output size of each panel in pixels
	Supersample int    // render at Size*Supersample, then downsample
	Format      string // webp, png or tga
}

// Face is one brush plane, tagged with its owning entity's classname.
type Face struct {
	Plane     mapfile.Plane
	Classname string
}

// Collect reads every parseable brush plane from a map stream.
func Collect(r io.Reader) ([]Face, error) {
	var faces []Face
	err := mapfile.Scan(r, func(_ int, line mapfile.Line, st *mapfile.State) error {
		if line.Kind == mapfile.KindPlane && line.Err == nil {
			faces = append(faces, Face{Plane: line.Plane, Classname: st.Classname})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return faces, nil
}

// CollectFile is Collect on a file path.
func CollectFile(path string) ([]Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preview: open %s: %w", path, err)
	}
	defer f.Close()
	return Collect(f)
}

var (
	floorColor  = color.NRGBA{R: 120, G: 150, B: 200, A: 160}
	wallXColor  = color.NRGBA{R: 230, G: 120, B: 100, A: 220}
	wallYColor  = color.NRGBA{R: 120, G: 210, B: 120, A: 220}
	entityColor = color.NRGBA{R: 240, G: 200, B: 80, A: 255}
	dividerGray = color.NRGBA{R: 90, G: 90, B: 96, A: 255}
)

// faceColor picks a colour by the plane's dominant normal axis. Brush
// entities other than the world are highlighted.
func faceColor(f Face) color.NRGBA {
	if f.Classname != "" && f.Classname != "worldspawn" {
		return entityColor
	}
	p := f.Plane.Points
	n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
	switch n.DominantAxis() {
	case 0:
		return wallXColor
	case 1:
		return wallYColor
	default:
		return floorColor
	}
}

func segments(faces []Face) []raster.Segment {
	segs := make([]raster.Segment, 0, len(faces)*3)
	for _, f := range faces {
		c := faceColor(f)
		p := f.Plane.Points
		segs = append(segs,
			raster.Segment{A: p[0], B: p[1], Color: c},
			raster.Segment{A: p[1], B: p[2], Color: c},
			raster.Segment{A: p[2], B: p[0], Color: c},
		)
	}
	return segs
}

// Compare renders before and after as two panels at the same scale.
func Compare(before, after []Face, opts Options) *image.NRGBA {
	bs, as := segments(before), segments(after)
	bf, af := raster.FrameOf(bs), raster.FrameOf(as)
	span := math.Max(bf.Span(), af.Span())

	left := panel(bs, bf, span, opts)
	right := panel(as, af, span, opts)
	return postprocess.SideBySide(left, right, opts.Size/32+2, dividerGray)
}

func panel(segs []raster.Segment, frame raster.Frame, span float64, opts Options) *image.NRGBA {
	img := raster.RenderTopDown(segs, frame, span, opts.Size, opts.Supersample)
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, opts.Size)
	}
	return img
}

// WriteFile renders a comparison of the two map files and writes it to
// outPath in the configured format.
func WriteFile(outPath, beforePath, afterPath string, opts Options) error {
	before, err := CollectFile(beforePath)
	if err != nil {
		return err
	}
	after, err := CollectFile(afterPath)
	if err != nil {
		return err
	}

	img := Compare(before, after, opts)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("preview: create dir for %s: %w", outPath, err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", outPath, err)
	}
	if err := Encode(f, img, opts.Format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("preview: write %s: %w", outPath, err)
	}
	return nil
}
