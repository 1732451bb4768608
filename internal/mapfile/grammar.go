package mapfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"quake-map-flipper/internal/mathutil"
)

var (
	// ( x y z ) ( x y z ) ( x y z ) TEX ox oy rot sx sy
	// Fields are captured loosely and validated afterwards so that a malformed
	// number is reported instead of silently skipped.
	planeRe = regexp.MustCompile(`^(\s*)` +
		`\(\s*([^\s()]+)\s+([^\s()]+)\s+([^\s()]+)\s*\)\s*` +
		`\(\s*([^\s()]+)\s+([^\s()]+)\s+([^\s()]+)\s*\)\s*` +
		`\(\s*([^\s()]+)\s+([^\s()]+)\s+([^\s()]+)\s*\)\s*` +
		`(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s+(\S+)\s*$`)

	numberRe = regexp.MustCompile(`^[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?$`)
	intRe    = regexp.MustCompile(`^[-+]?\d+$`)
)

// propertyGrammar recognizes one entity key: `"key" "value"`.
type propertyGrammar struct {
	key string
	re  *regexp.Regexp
}

func newPropertyGrammar(key string) propertyGrammar {
	return propertyGrammar{
		key: key,
		re:  regexp.MustCompile(`^(\s*)"` + regexp.QuoteMeta(key) + `"\s*"([^"]*)"\s*$`),
	}
}

func (g propertyGrammar) match(text string) (indent, value string, ok bool) {
	m := g.re.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// propertyGrammars are probed in order; classname comes first so it is
// captured before any scoped key of the same entity is examined.
var propertyGrammars = []propertyGrammar{
	newPropertyGrammar(KeyClassname),
	newPropertyGrammar(KeyOrigin),
	newPropertyGrammar(KeyAngle),
	newPropertyGrammar(KeyAngles),
	newPropertyGrammar(KeyMessage),
	newPropertyGrammar(KeyMap),
}

var planeFields = [...]string{
	"p1.x", "p1.y", "p1.z",
	"p2.x", "p2.y", "p2.z",
	"p3.x", "p3.y", "p3.z",
	"texture", "offset x", "offset y", "rotation", "scale x", "scale y",
}

// matchPlane reports whether text has plane shape. When it does, the parsed
// plane is returned along with an error if any numeric field is invalid.
func matchPlane(text string) (indent string, p Plane, matched bool, err error) {
	m := planeRe.FindStringSubmatch(text)
	if m == nil {
		return "", Plane{}, false, nil
	}
	fields := m[2:]

	var nums [14]float64
	n := 0
	for i, tok := range fields {
		if i == 9 {
			continue // texture name
		}
		v, err := ParseNumber(tok)
		if err != nil {
			return m[1], Plane{}, true, fmt.Errorf("%s: %w", planeFields[i], err)
		}
		nums[n] = v
		n++
	}

	p.Points = [3]mathutil.Vec3{
		{nums[0], nums[1], nums[2]},
		{nums[3], nums[4], nums[5]},
		{nums[6], nums[7], nums[8]},
	}
	p.Texture = Texture{
		Name:     fields[9],
		OffsetX:  nums[9],
		OffsetY:  nums[10],
		Rotation: nums[11],
		ScaleX:   nums[12],
		ScaleY:   nums[13],
	}
	return m[1], p, true, nil
}

// ParseNumber parses a decimal map number. Hex, NaN and Inf forms are rejected.
func ParseNumber(tok string) (float64, error) {
	if !numberRe.MatchString(tok) {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", tok, err)
	}
	return v, nil
}

// ParseInt parses a signed decimal integer.
func ParseInt(tok string) (int, error) {
	if !intRe.MatchString(tok) {
		return 0, fmt.Errorf("invalid integer %q", tok)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", tok, err)
	}
	return v, nil
}

// ParseVec3 parses a whitespace-separated triple such as an origin value.
func ParseVec3(s string) (mathutil.Vec3, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 numbers, got %d", len(parts))
	}
	var v mathutil.Vec3
	for i, p := range parts {
		f, err := ParseNumber(p)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}
