package raster

import "image/color"

// FrameBuffer holds the rendering target as a flat RGBA slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a buffer filled with bg.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = bg.R
		fb.Color[i+1] = bg.G
		fb.Color[i+2] = bg.B
		fb.Color[i+3] = bg.A
	}
	return fb
}

// Blend composites c over the pixel at (x, y). Out-of-range pixels are ignored.
func (fb *FrameBuffer) Blend(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	a := float64(c.A) / 255
	inv := 1 - a
	fb.Color[i] = uint8(float64(c.R)*a + float64(fb.Color[i])*inv + 0.5)
	fb.Color[i+1] = uint8(float64(c.G)*a + float64(fb.Color[i+1])*inv + 0.5)
	fb.Color[i+2] = uint8(float64(c.B)*a + float64(fb.Color[i+2])*inv + 0.5)
	fb.Color[i+3] = uint8(float64(c.A) + float64(fb.Color[i+3])*inv + 0.5)
}

// At returns the pixel at (x, y).
func (fb *FrameBuffer) At(x, y int) color.NRGBA {
	i := (y*fb.Width + x) * 4
	return color.NRGBA{R: fb.Color[i], G: fb.Color[i+1], B: fb.Color[i+2], A: fb.Color[i+3]}
}
