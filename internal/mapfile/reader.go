package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader splits a map stream into lines, keeping each line's terminator so
// unchanged lines can be written back byte for byte.
type Reader struct {
	br   *bufio.Reader
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Next returns the next line without its terminator, the terminator itself
// ("\n", "\r\n", or "" on an unterminated last line; a bare "\r" only ends
// the final line) and the 1-based line number. It returns io.EOF once the
// stream is exhausted.
func (r *Reader) Next() (text, eol string, n int, err error) {
	s, err := r.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", r.line, err
	}
	if s == "" {
		return "", "", r.line, io.EOF
	}
	r.line++

	switch {
	case strings.HasSuffix(s, "\r\n"):
		eol = "\r\n"
	case strings.HasSuffix(s, "\n"):
		eol = "\n"
	case strings.HasSuffix(s, "\r"):
		eol = "\r"
	}
	return s[:len(s)-len(eol)], eol, r.line, nil
}

// Scan classifies every line of r in order and calls fn for each. Scanning
// stops at the first error returned by fn.
func Scan(r io.Reader, fn func(n int, line Line, st *State) error) error {
	rd := NewReader(r)
	var st State
	for {
		text, _, n, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("mapfile: read line %d: %w", n+1, err)
		}
		if err := fn(n, st.Classify(text), &st); err != nil {
			return err
		}
	}
}
