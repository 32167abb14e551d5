package types

import (
	"fmt"
	"sort"
	"strings"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Source is a source text together with the offsets of its line starts.
// Lines and columns are 1-based; columns count bytes.
type Source struct {
	Filename string
	Text     string
	lines    []int
}

func NewSource(filename, text string) *Source {
	s := &Source{Filename: filename, Text: text, lines: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

// Position maps a byte offset to a line and column. Offsets past the end
// of the text are clamped to the end.
func (s *Source) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return Position{
		Line:     line + 1,
		Column:   offset - s.lines[line] + 1,
		Filename: s.Filename,
	}
}

// Line returns the text of the n-th line without its newline.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	start := s.lines[n-1]
	end := len(s.Text)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return strings.TrimSuffix(s.Text[start:end], "\r")
}

func (s *Source) LineCount() int {
	return len(s.lines)
}

// Slice returns the source text covered by a span.
func (s *Source) Slice(span Span) string {
	if span.Start < 0 || span.End > len(s.Text) || span.Start > span.End {
		return ""
	}
	return s.Text[span.Start:span.End]
}
