// Package flip mirrors a Quake map across one or more coordinate axes.
//
// Run is the single-pass pipeline: each line is classified by mapfile.State
// and, when it is a recognized entity property or brush plane, rewritten by
// FlipProperty or FlipPlane. Every other line is written back untouched.
package flip

import (
	"errors"
	"fmt"
	"strings"

	"quake-map-flipper/internal/mathutil"
)

// ErrNoAxis is returned when no axis is selected. It is raised before any input is read.
var ErrNoAxis = errors.New("flip: no axis selected")

// Axes selects the coordinate axes to mirror across.
type Axes struct {
	X, Y, Z bool
}

// Any reports whether at least one axis is selected.
func (a Axes) Any() bool {
	return a.X || a.Y || a.Z
}

// Count returns the number of selected axes.
func (a Axes) Count() int {
	n := 0
	for _, b := range [3]bool{a.X, a.Y, a.Z} {
		if b {
			n++
		}
	}
	return n
}

// ReversesWinding reports whether the reflection inverts plane orientation.
// Each single-axis reflection flips it, so an odd count needs a vertex swap.
func (a Axes) ReversesWinding() bool {
	return a.Count()%2 == 1
}

// Matrix returns the reflection matrix for the selected axes.
func (a Axes) Matrix() mathutil.Mat3 {
	return mathutil.Mirror(a.X, a.Y, a.Z)
}

func (a Axes) String() string {
	var b strings.Builder
	if a.X {
		b.WriteByte('x')
	}
	if a.Y {
		b.WriteByte('y')
	}
	if a.Z {
		b.WriteByte('z')
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// ParseAxes parses an axis list such as "x", "xz" or "x,y,z" (case-insensitive).
// An empty string yields no axes.
func ParseAxes(s string) (Axes, error) {
	var a Axes
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'x':
			a.X = true
		case 'y':
			a.Y = true
		case 'z':
			a.Z = true
		case ',', ' ':
		default:
			return Axes{}, fmt.Errorf("flip: unknown axis %q in %q", r, s)
		}
	}
	return a, nil
}
