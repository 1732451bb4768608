package flip

import (
	"fmt"
	"math"
	"strconv"

	"quake-map-flipper/internal/mapfile"
	"quake-map-flipper/internal/mathutil"
	"quake-map-flipper/internal/numfmt"
)

// Special "angle" values meaning straight up and straight down.
const (
	AngleUp   = -1
	AngleDown = -2
)

// FlipProperty returns the mirrored value of a recognized entity property.
// classname is the owning entity's captured classname ("" if none yet).
// rewrite is false when the line must be emitted unchanged.
func FlipProperty(p mapfile.Property, classname string, opts Options) (value string, rewrite bool, err error) {
	switch p.Key {
	case mapfile.KeyOrigin:
		v, err := mapfile.ParseVec3(p.Value)
		if err != nil {
			return "", false, fmt.Errorf("origin: %w", err)
		}
		v = opts.Axes.Matrix().MulVec3(v)
		return numfmt.Join(v[0], v[1], v[2]), true, nil

	case mapfile.KeyAngle:
		n, err := mapfile.ParseInt(p.Value)
		if err != nil {
			return "", false, fmt.Errorf("angle: %w", err)
		}
		return strconv.Itoa(flipAngle(n, opts.Axes)), true, nil

	case mapfile.KeyAngles:
		v, err := mapfile.ParseVec3(p.Value)
		if err != nil {
			return "", false, fmt.Errorf("angles: %w", err)
		}
		pitch, yaw, roll := flipAngles(v, opts.Axes)
		return numfmt.Join(pitch, yaw, roll), true, nil

	case mapfile.KeyMessage:
		if classname == opts.WorldspawnClass {
			return p.Value + opts.MessageSuffix, true, nil
		}

	case mapfile.KeyMap:
		if classname == opts.ChangelevelClass {
			return p.Value + opts.MapSuffix, true, nil
		}
	}
	return "", false, nil
}

// flipAngle mirrors a single facing angle. The up/down sentinels only swap
// with each other, and only on a vertical flip.
func flipAngle(n int, axes Axes) int {
	if n < 0 {
		if axes.Z {
			switch n {
			case AngleUp:
				return AngleDown
			case AngleDown:
				return AngleUp
			}
		}
		return n
	}

	a := float64(n)
	if axes.X {
		a = 180 - a
	}
	if axes.Y {
		a = -a
	}
	return int(math.Round(mathutil.NormalizeDegrees(a)))
}

// flipAngles mirrors a pitch/yaw/roll triple. Only yaw is normalized.
//
// The roll negation on a Y flip stacks on the one applied for an X flip. This
// reproduces the established tool output; it is a heuristic, not a derived
// identity.
func flipAngles(v mathutil.Vec3, axes Axes) (pitch, yaw, roll float64) {
	pitch, yaw, roll = v[0], v[1], v[2]
	if axes.X {
		yaw, roll = 180-yaw, -roll
	}
	if axes.Y {
		yaw, roll = -yaw, -roll
	}
	if axes.Z {
		pitch = -pitch
	}
	return pitch, mathutil.NormalizeDegrees(yaw), roll
}

func formatProperty(indent, key, value string) string {
	return indent + `"` + key + `" "` + value + `"`
}
