package raster

import (
	"image"
	"image/color"
	"math"

	"quake-map-flipper/internal/mathutil"
)

// Segment is a map-space edge with its draw colour.
type Segment struct {
	A, B  mathutil.Vec3
	Color color.NRGBA
}

// Frame is the map-space XY window mapped onto the image.
type Frame struct {
	Min, Max mathutil.Vec3
}

// FrameOf returns the XY bounds of all segment endpoints.
func FrameOf(segs []Segment) Frame {
	f := Frame{
		Min: mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, s := range segs {
		f.Min = f.Min.Min(s.A).Min(s.B)
		f.Max = f.Max.Max(s.A).Max(s.B)
	}
	return f
}

// Span returns the larger of the frame's X and Y extents.
func (f Frame) Span() float64 {
	return math.Max(f.Max[0]-f.Min[0], f.Max[1]-f.Min[1])
}

// Background is the preview canvas colour.
var Background = color.NRGBA{R: 24, G: 26, B: 30, A: 255}

// RenderTopDown draws segments as a top-down wireframe (X right, Y up) at
// size*supersample pixels. The frame is centred; span sets the map units
// covered by the drawable area, so two renders with the same span share a scale.
func RenderTopDown(segs []Segment, frame Frame, span float64, size, supersample int) *image.NRGBA {
	renderSize := size * supersample
	fb := NewFrameBuffer(renderSize, renderSize, Background)

	if len(segs) > 0 {
		if span < 0.001 {
			span = 0.001
		}
		margin := 16 * supersample
		scale := float64(renderSize-2*margin) / span

		cx := (frame.Min[0] + frame.Max[0]) / 2
		cy := (frame.Min[1] + frame.Max[1]) / 2
		half := float64(renderSize) / 2

		project := func(v mathutil.Vec3) (float64, float64) {
			return half + (v[0]-cx)*scale, half - (v[1]-cy)*scale
		}

		for _, s := range segs {
			x0, y0 := project(s.A)
			x1, y1 := project(s.B)
			DrawLine(fb, x0, y0, x1, y1, s.Color)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}
