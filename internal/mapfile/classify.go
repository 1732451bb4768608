package mapfile

import "strings"

// State is the running nesting state threaded through Classify, one line at a time.
//
// Depth is 0 outside any entity, 1 inside an entity's property block and 2
// inside a brush. Classname holds the first classname seen in the current
// entity; HasClassname reports whether one has been captured.
type State struct {
	Depth        int
	Classname    string
	HasClassname bool
}

func (s *State) clearClassname() {
	s.Classname = ""
	s.HasClassname = false
}

// Classify classifies one line (terminator excluded) and advances the state.
func (s *State) Classify(text string) Line {
	trimmed := strings.TrimSpace(text)
	line := Line{Text: text}

	switch {
	case trimmed == "":
		line.Kind = KindBlank

	case strings.HasPrefix(trimmed, "//"):
		line.Kind = KindComment

	case trimmed == "{":
		line.Kind = KindBraceOpen
		s.Depth++
		if s.Depth == 1 {
			s.clearClassname()
		}

	case trimmed == "}":
		line.Kind = KindBraceClose
		if s.Depth == 0 {
			line.Unbalanced = true
		} else {
			s.Depth--
		}
		if s.Depth == 0 {
			s.clearClassname()
		}

	case s.Depth == 1:
		s.classifyProperty(&line)

	case s.Depth == 2:
		indent, plane, ok, err := matchPlane(text)
		if ok {
			line.Kind = KindPlane
			line.Indent = indent
			line.Plane = plane
			line.Err = err
		}
	}

	line.Depth = s.Depth
	return line
}

func (s *State) classifyProperty(line *Line) {
	for _, g := range propertyGrammars {
		indent, value, ok := g.match(line.Text)
		if !ok {
			continue
		}
		line.Kind = KindProperty
		line.Indent = indent
		line.Property = Property{Key: g.key, Value: value}
		if g.key == KeyClassname && !s.HasClassname {
			s.Classname = value
			s.HasClassname = true
		}
		return
	}
}
