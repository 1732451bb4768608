package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// SideBySide places left and right next to each other with a gap filled by
// the divider colour. Both panels are top-aligned; the canvas is as tall as
// the taller one.
func SideBySide(left, right *image.NRGBA, gap int, divider color.NRGBA) *image.NRGBA {
	lb, rb := left.Bounds(), right.Bounds()
	if gap < 0 {
		gap = 0
	}

	w := lb.Dx() + gap + rb.Dx()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(divider), image.Point{}, draw.Src)

	// Left = original
	draw.Copy(canvas, image.Pt(0, 0), left, lb, draw.Src, nil)
	// Right = flipped
	draw.Copy(canvas, image.Pt(lb.Dx()+gap, 0), right, rb, draw.Src, nil)

	return canvas
}
