package errors

import (
	"testing"

	"github.com/pontaoski/cfront/types"
	"github.com/ztrue/tracerr"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		text string
		d    Diagnostic
		want string
	}{
		{
			name: "span",
			text: "int main(void) {\n    return (static int) 10;\n}",
			d:    ExpectedGot{Expected: "expression", Found: "static", Location: types.Span{Start: 29, End: 35}},
			want: "t.c:2:13: error: Expected expression, but found 'static'\n" +
				"    return (static int) 10;\n" +
				"            ^^^^^^\n",
		},
		{
			name: "tabs",
			text: "\tint x = @;",
			d:    UnrecognizedCharacter{Char: "@", Location: types.SingleCharSpan(9)},
			want: "t.c:1:10: error: Unrecognized character \"@\"\n" +
				"\tint x = @;\n" +
				"\t        ^\n",
		},
		{
			name: "clamped to line",
			text: "char *s = \"abc\nint y;",
			d:    UnterminatedString{Location: types.Span{Start: 10, End: 21}},
			want: "t.c:1:11: error: Unterminated string literal\n" +
				"char *s = \"abc\n" +
				"          ^^^^\n",
		},
		{
			name: "end of file",
			text: "int x = 1",
			d:    ExpectedGot{Expected: "';'", AtEOF: true, Location: types.Span{Start: 9, End: 9}},
			want: "t.c:1:10: error: Expected ';', but found end of file\n" +
				"int x = 1\n" +
				"         ^\n",
		},
	}
	for _, tt := range tests {
		got := Render(types.NewSource("t.c", tt.text), tt.d)
		if got != tt.want {
			t.Errorf("%s:\ngot:\n%s\nwant:\n%s", tt.name, got, tt.want)
		}
	}
}

func TestAsDiagnostic(t *testing.T) {
	inner := InvalidStorageClass{Location: types.Span{Start: 1, End: 7}}
	d, ok := AsDiagnostic(tracerr.Wrap(inner))
	if !ok || d != Diagnostic(inner) {
		t.Errorf("AsDiagnostic(wrapped) = %v, %v", d, ok)
	}
	if _, ok := AsDiagnostic(nil); ok {
		t.Error("nil is not a diagnostic")
	}
	if _, ok := AsDiagnostic(tracerr.New("boom")); ok {
		t.Error("a plain error is not a diagnostic")
	}
}
