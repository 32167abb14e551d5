// Package parsetest checks parser output against expected trees and
// against diagnostics annotated inline in the test source.
package parsetest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/parser"
	"github.com/pontaoski/cfront/types"
)

// AnyID in an expected tree matches whatever id the parser assigned.
const AnyID = "<{node_id}>"

// AssertParse parses src and compares the printed tree with expected. Both
// are dedented and trimmed of surrounding blank lines first.
func AssertParse(t testing.TB, src, expected string) {
	t.Helper()

	text := Dedent(src)
	prog, err := parser.Parse(text)
	if err != nil {
		t.Fatalf("parse failed:\n%s", describe(text, err))
	}

	got := strings.Split(ast.Print(prog), "\n")
	want := strings.Split(Dedent(expected), "\n")
	for i := 0; i < len(got) || i < len(want); i++ {
		switch {
		case i >= len(got):
			t.Fatalf("tree ends early, missing line %d: %q\n\nfull tree:\n%s", i+1, want[i], strings.Join(got, "\n"))
		case i >= len(want):
			t.Fatalf("tree has extra line %d: %q\n\nfull tree:\n%s", i+1, got[i], strings.Join(got, "\n"))
		case !lineMatches(got[i], want[i]):
			t.Fatalf("tree differs at line %d\n got: %q\nwant: %q\n\nfull tree:\n%s", i+1, got[i], want[i], strings.Join(got, "\n"))
		}
	}
}

func lineMatches(got, want string) bool {
	if !strings.Contains(want, AnyID) {
		return got == want
	}
	parts := strings.Split(want, AnyID)
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	re := regexp.MustCompile(`^` + strings.Join(parts, `<\d+>`) + `$`)
	return re.MatchString(got)
}

var caretLine = regexp.MustCompile(`^(\s*//\s*)(\^+)\s*(.*)$`)

type caretAnnotation struct {
	line    int // 1-based line the carets point into
	start   int // 0-based byte columns, end exclusive
	end     int
	message string
}

// AssertError parses src and expects it to fail. The expected diagnostic
// is written as a comment under the offending line, with carets covering
// the reported span:
//
//	return (static int) 10;
//	      //^^^^^^ Expected expression, but found 'static'
//
// The comment line is removed before parsing.
func AssertError(t testing.TB, src string) {
	t.Helper()

	text, ann, err := extractCarets(Dedent(src))
	if err != nil {
		t.Fatal(err)
	}

	prog, perr := parser.Parse(text)
	if perr == nil {
		t.Fatalf("expected error %q, but parsing succeeded:\n%s", ann.message, ast.Print(prog))
	}
	d, ok := errors.AsDiagnostic(perr)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", perr)
	}

	if d.Error() != ann.message {
		t.Errorf("message = %q, want %q\n%s", d.Error(), ann.message, describe(text, perr))
	}

	source := types.NewSource("test.c", text)
	pos := source.Position(d.Span().Start)
	if pos.Line != ann.line || pos.Column-1 != ann.start || d.Span().Len() != ann.end-ann.start {
		t.Errorf("span is %d:%d+%d, want %d:%d+%d\n%s",
			pos.Line, pos.Column-1, d.Span().Len(),
			ann.line, ann.start, ann.end-ann.start,
			describe(text, perr))
	}
}

// extractCarets finds the first caret comment, returns the source with that
// line removed, and where the carets point.
func extractCarets(src string) (string, caretAnnotation, error) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		m := caretLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i == 0 {
			return "", caretAnnotation{}, fmt.Errorf("caret comment on line 1 has no line to point into")
		}
		ann := caretAnnotation{
			line:    i,
			start:   len(m[1]),
			end:     len(m[1]) + len(m[2]),
			message: strings.TrimSpace(m[3]),
		}
		rest := append(append([]string{}, lines[:i]...), lines[i+1:]...)
		return strings.Join(rest, "\n"), ann, nil
	}
	return "", caretAnnotation{}, fmt.Errorf("no //^^^ caret comment in source:\n%s", src)
}

func describe(text string, err error) string {
	if d, ok := errors.AsDiagnostic(err); ok {
		return errors.Render(types.NewSource("test.c", text), d)
	}
	return err.Error()
}

// Dedent removes the indentation shared by all non-blank lines, trailing
// whitespace, and leading and trailing blank lines.
func Dedent(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if len(line) >= indent && indent > 0 {
			line = line[indent:]
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
