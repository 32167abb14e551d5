package errors

import (
	"fmt"

	"github.com/pontaoski/cfront/types"
	"github.com/ztrue/tracerr"
)

// Diagnostic is implemented by every error the lexer and parser report.
type Diagnostic interface {
	error
	Span() types.Span
}

// AsDiagnostic strips any stack trace wrapping from err and reports whether
// what remains is a Diagnostic.
func AsDiagnostic(err error) (Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	d, ok := tracerr.Unwrap(err).(Diagnostic)
	return d, ok
}

type UnrecognizedCharacter struct {
	Char     string
	Location types.Span
}

func (e UnrecognizedCharacter) Error() string {
	return fmt.Sprintf("Unrecognized character %q", e.Char)
}

func (e UnrecognizedCharacter) Span() types.Span { return e.Location }

type MalformedNumber struct {
	Text     string
	Location types.Span
}

func (e MalformedNumber) Error() string {
	return fmt.Sprintf("Malformed number '%s'", e.Text)
}

func (e MalformedNumber) Span() types.Span { return e.Location }

type ConstantTooLarge struct {
	Text     string
	Location types.Span
}

func (e ConstantTooLarge) Error() string {
	return fmt.Sprintf("Constant '%s' is too large to represent", e.Text)
}

func (e ConstantTooLarge) Span() types.Span { return e.Location }

type MalformedCharacter struct {
	Text     string
	Location types.Span
}

func (e MalformedCharacter) Error() string {
	return fmt.Sprintf("Malformed character constant %s", e.Text)
}

func (e MalformedCharacter) Span() types.Span { return e.Location }

type InvalidEscape struct {
	Escape   string
	Location types.Span
}

func (e InvalidEscape) Error() string {
	return fmt.Sprintf("Invalid escape sequence '%s'", e.Escape)
}

func (e InvalidEscape) Span() types.Span { return e.Location }

type UnterminatedString struct {
	Location types.Span
}

func (e UnterminatedString) Error() string {
	return "Unterminated string literal"
}

func (e UnterminatedString) Span() types.Span { return e.Location }

type UnterminatedComment struct {
	Location types.Span
}

func (e UnterminatedComment) Error() string {
	return "Unterminated comment"
}

func (e UnterminatedComment) Span() types.Span { return e.Location }

// ExpectedGot is the parser's token mismatch error. Found holds the
// offending lexeme and is ignored when AtEOF is set.
type ExpectedGot struct {
	Expected string
	Found    string
	AtEOF    bool
	Location types.Span
}

func (e ExpectedGot) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("Expected %s, but found end of file", e.Expected)
	}
	return fmt.Sprintf("Expected %s, but found '%s'", e.Expected, e.Found)
}

func (e ExpectedGot) Span() types.Span { return e.Location }

type InvalidTypeSpecifier struct {
	Location types.Span
}

func (e InvalidTypeSpecifier) Error() string {
	return "Invalid type specifier"
}

func (e InvalidTypeSpecifier) Span() types.Span { return e.Location }

type InvalidStorageClass struct {
	Location types.Span
}

func (e InvalidStorageClass) Error() string {
	return "Invalid storage class"
}

func (e InvalidStorageClass) Span() types.Span { return e.Location }

type InvalidDeclarator struct {
	Reason   string
	Location types.Span
}

func (e InvalidDeclarator) Error() string {
	return e.Reason
}

func (e InvalidDeclarator) Span() types.Span { return e.Location }
