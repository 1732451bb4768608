package flip

import (
	"fmt"

	"quake-map-flipper/internal/mapfile"
	"quake-map-flipper/internal/numfmt"
)

// FlipPlane reflects the plane points across the selected axes and swaps the
// second and third point when the reflection reverses winding.
//
// Texture handling is approximate: rotation is always negated, each offset is
// negated with its own axis, and scale is kept. Z never touches the offsets.
func FlipPlane(p mapfile.Plane, axes Axes) mapfile.Plane {
	m := axes.Matrix()
	out := p
	for i, pt := range p.Points {
		out.Points[i] = m.MulVec3(pt)
	}
	if axes.ReversesWinding() {
		out.Points[1], out.Points[2] = out.Points[2], out.Points[1]
	}

	out.Texture.Rotation = -p.Texture.Rotation
	if axes.X {
		out.Texture.OffsetX = -p.Texture.OffsetX
	}
	if axes.Y {
		out.Texture.OffsetY = -p.Texture.OffsetY
	}
	return out
}

// FormatPlane renders a plane in canonical form after the given indent.
func FormatPlane(indent string, p mapfile.Plane) string {
	pt := func(i int) string {
		v := p.Points[i]
		return numfmt.Join(v[0], v[1], v[2])
	}
	t := p.Texture
	return fmt.Sprintf("%s( %s ) ( %s ) ( %s ) %s %s",
		indent, pt(0), pt(1), pt(2), t.Name,
		numfmt.Join(t.OffsetX, t.OffsetY, t.Rotation, t.ScaleX, t.ScaleY))
}
