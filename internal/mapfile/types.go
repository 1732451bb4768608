package mapfile

import "quake-map-flipper/internal/mathutil"

// Kind tags a classified map line.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindBlank
	KindComment
	KindBraceOpen
	KindBraceClose
	KindProperty
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindBraceOpen:
		return "brace-open"
	case KindBraceClose:
		return "brace-close"
	case KindProperty:
		return "property"
	case KindPlane:
		return "plane"
	default:
		return "unrecognized"
	}
}

// Recognized entity property keys.
const (
	KeyClassname = "classname"
	KeyOrigin    = "origin"
	KeyAngle     = "angle"
	KeyAngles    = "angles"
	KeyMessage   = "message"
	KeyMap       = "map"
)

// Property is a recognized entity key with its raw (unquoted) value.
type Property struct {
	Key   string
	Value string
}

// Texture holds the texture name and projection parameters of a plane.
type Texture struct {
	Name     string
	OffsetX  float64
	OffsetY  float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// Plane is one bounding half-space of a brush: three points and a texture.
type Plane struct {
	Points  [3]mathutil.Vec3
	Texture Texture
}

// Line is the classification of one input line.
type Line struct {
	Kind   Kind
	Text   string // raw text, terminator excluded
	Indent string // leading whitespace, reused when the line is rewritten
	Depth  int    // nesting depth after this line

	Property Property // KindProperty only
	Plane    Plane    // KindPlane only, valid when Err is nil

	// Err is set when the line has plane shape but a field failed to parse.
	Err error

	// Unbalanced marks a closing brace seen at depth 0.
	Unbalanced bool
}
