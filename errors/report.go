package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/cfront/types"
)

// Render formats d as a compiler-style report: a header line with the
// position, the offending source line, and a caret line under the span.
func Render(src *types.Source, d Diagnostic) string {
	span := d.Span()
	pos := src.Position(span.Start)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: error: %s\n", pos, d.Error())

	line := src.Line(pos.Line)
	b.WriteString(line)
	b.WriteByte('\n')

	width := span.Len()
	if rest := len(line) - (pos.Column - 1); width > rest {
		// Spans running past the line are cut at its end.
		width = rest
	}
	if width < 1 {
		width = 1
	}

	for i := 0; i < pos.Column-1 && i < len(line); i++ {
		// Keep tabs so the carets line up in any tab width.
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString(strings.Repeat("^", width))
	b.WriteByte('\n')
	return b.String()
}
