package parser_test

import (
	"io/ioutil"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/lexer"
	"github.com/pontaoski/cfront/parser"
	"github.com/pontaoski/cfront/parsetest"
	"github.com/pontaoski/cfront/types"
	"gopkg.in/yaml.v2"
)

type programCase struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
	Tree string `yaml:"tree"`
}

type errorCase struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
}

func load(t *testing.T, path string, into interface{}) {
	t.Helper()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := yaml.Unmarshal(data, into); err != nil {
		t.Fatalf("%s: %v", path, err)
	}
}

func TestPrograms(t *testing.T) {
	var f struct {
		Programs []programCase `yaml:"programs"`
	}
	load(t, "testdata/programs.yaml", &f)
	if len(f.Programs) == 0 {
		t.Fatal("no program fixtures loaded")
	}
	for _, tc := range f.Programs {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			parsetest.AssertParse(t, tc.Src, tc.Tree)
		})
	}
}

func TestErrors(t *testing.T) {
	var f struct {
		Errors []errorCase `yaml:"errors"`
	}
	load(t, "testdata/errors.yaml", &f)
	if len(f.Errors) == 0 {
		t.Fatal("no error fixtures loaded")
	}
	for _, tc := range f.Errors {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			parsetest.AssertError(t, tc.Src)
		})
	}
}

func TestReturnZero(t *testing.T) {
	parsetest.AssertParse(t, `
		int main(void) {
			return 0;
		}
	`, `
		Program
		    ╰── Function [main]
		        ╰── Body
		            ╰── Return
		                ╰── Constant Int [0]
	`)
}

func TestInvalidTypeSpecifierCoversRun(t *testing.T) {
	parsetest.AssertError(t, `
		int main(void) {
		    int long int i = 0;
		  //^^^^^^^^^^^^ Invalid type specifier
		    return i;
		}
	`)
}

func TestStaticInCast(t *testing.T) {
	parsetest.AssertError(t, `
		int main(void) {
		    return (static int) 10;
		          //^^^^^^ Expected expression, but found 'static'
		}
	`)
}

// sample exercises most node kinds.
const sample = `
int counter = 0;
static long table[4] = {1, 2l, 3, 4};
extern unsigned int (*lookup(int key, char *name))[8];

int main(void) {
    int i;
    double *d = (double *) &table[1];
    for (i = 0; i < 4; i++) {
        switch (table[i] % 3) {
        case 0:
            counter += i ? -i : ~i;
            break;
        default:
            if (!d) goto done;
        }
    }
    do counter--; while (counter > 10 && sizeof(long) >= 8 || *d != 0.5);
done:
    return lookup(counter, "x")[0][1] << 2;
}
`

func parseSample(t *testing.T) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(sample)
	if err != nil {
		d, _ := errors.AsDiagnostic(err)
		t.Fatalf("parse failed: %v\n%s", err, errors.Render(types.NewSource("sample.c", sample), d))
	}
	return prog
}

func TestIDsArePostOrder(t *testing.T) {
	prog := parseSample(t)

	seen := map[int]bool{}
	highest := 0
	ast.Walk(prog, func(n ast.Node) bool {
		e, ok := n.(ast.Expression)
		if !ok {
			return true
		}
		id := e.Info().ID
		if id <= 0 || seen[id] {
			t.Errorf("expression %s has id %d, which is not unique and positive", repr.String(e), id)
		}
		seen[id] = true
		if id > highest {
			highest = id
		}
		ast.Walk(e, func(c ast.Node) bool {
			if ce, ok := c.(ast.Expression); ok && c != n && ce.Info().ID >= id {
				t.Errorf("child id %d is not below parent id %d", ce.Info().ID, id)
			}
			return true
		})
		return true
	})
	if highest != len(seen) {
		t.Errorf("ids run up to %d but there are %d expressions", highest, len(seen))
	}
}

func checkContainment(t *testing.T, n ast.Node) {
	ast.Walk(n, func(c ast.Node) bool {
		if c == n {
			return true
		}
		if !n.Span().Contains(c.Span()) {
			t.Errorf("%T %s does not contain child %T %s", n, n.Span(), c, c.Span())
		}
		checkContainment(t, c)
		return false
	})
}

func TestSpanContainment(t *testing.T) {
	checkContainment(t, parseSample(t))
}

func TestPrintIsStable(t *testing.T) {
	first := ast.Print(parseSample(t))
	second := ast.Print(parseSample(t))
	if first != second {
		t.Errorf("printing the same input twice differs:\n%s\n---\n%s", first, second)
	}
}

func TestSpecifierOrderIndependence(t *testing.T) {
	orders := []string{
		"long unsigned int",
		"unsigned int long",
		"long int unsigned",
		"int unsigned long",
		"unsigned long int",
		"int long unsigned",
		"static long unsigned int",
		"long static unsigned int",
		"long unsigned int static",
	}
	var want ast.Type = ast.ULong
	for _, spec := range orders {
		prog, err := parser.Parse(spec + " x;")
		if err != nil {
			t.Errorf("%q: %v", spec, err)
			continue
		}
		v := prog.Decls[0].(*ast.VarDecl)
		if !ast.TypeEqual(v.Type, want) {
			t.Errorf("%q resolved to %s", spec, repr.String(v.Type))
		}
	}
}

func TestCastVersusParens(t *testing.T) {
	for _, e := range []string{"x", "a + b", "f(1)", "*p", "(y)", "a = b", "c ? d : e", "arr[2]"} {
		src := "int main(void) { return (" + e + ") + 1; }"
		prog, err := parser.Parse(src)
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		ret := prog.Decls[0].(*ast.FunctionDecl).Body.Items[0].(*ast.Return)
		bin, ok := ret.Expr.(*ast.Binary)
		if !ok || bin.Op != ast.Add {
			t.Errorf("%q: return expression is %s", src, repr.String(ret.Expr))
			continue
		}
		if _, isCast := bin.Left.(*ast.Cast); isCast {
			t.Errorf("%q: parenthesized expression parsed as a cast", src)
		}
		if c, ok := bin.Right.(*ast.Constant); !ok || c.Int != 1 {
			t.Errorf("%q: right operand is %s", src, repr.String(bin.Right))
		}
	}
}

func TestAssociativity(t *testing.T) {
	tests := []struct {
		expr string
		// want renders the tree with variables by name.
		want string
	}{
		{"a = b = c", "(a = (b = c))"},
		{"a += b -= c", "(a += (b -= c))"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a = b ? c : d", "(a = (b ? c : d))"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
	}
	for _, tt := range tests {
		prog, err := parser.Parse("int main(void) { return " + tt.expr + "; }")
		if err != nil {
			t.Errorf("%q: %v", tt.expr, err)
			continue
		}
		ret := prog.Decls[0].(*ast.FunctionDecl).Body.Items[0].(*ast.Return)
		if got := group(ret.Expr); got != tt.want {
			t.Errorf("%q grouped as %s, want %s", tt.expr, got, tt.want)
		}
	}
}

func group(e ast.Expression) string {
	switch e := e.(type) {
	case *ast.Var:
		return e.Name
	case *ast.Binary:
		return "(" + group(e.Left) + " " + e.Op.String() + " " + group(e.Right) + ")"
	case *ast.Conditional:
		return "(" + group(e.Cond) + " ? " + group(e.Then) + " : " + group(e.Else) + ")"
	}
	return repr.String(e)
}

func TestPrefixIncrementOfCast(t *testing.T) {
	for _, src := range []string{"++(long)x", "--(int)x", "++(char *)p"} {
		prog, err := parser.Parse("int main(void) { return " + src + "; }")
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		ret := prog.Decls[0].(*ast.FunctionDecl).Body.Items[0].(*ast.Return)
		u, ok := ret.Expr.(*ast.Unary)
		if !ok {
			t.Errorf("%q: got %s", src, repr.String(ret.Expr))
			continue
		}
		if _, ok := u.Expr.(*ast.Cast); !ok {
			t.Errorf("%q: operand is %s, want a cast", src, repr.String(u.Expr))
		}
	}
}

func TestParensWidenSpan(t *testing.T) {
	src := "int main(void) { return (x) + 1; }"
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ret := prog.Decls[0].(*ast.FunctionDecl).Body.Items[0].(*ast.Return)
	x := ret.Expr.(*ast.Binary).Left
	if got := src[x.Span().Start:x.Span().End]; got != "(x)" {
		t.Errorf("span of parenthesized var covers %q", got)
	}
}

func TestExpectedAtEndOfFile(t *testing.T) {
	src := "int x = 1"
	_, err := parser.Parse(src)
	d, ok := errors.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if d.Error() != "Expected ';', but found end of file" {
		t.Errorf("message = %q", d.Error())
	}
	if d.Span() != (types.Span{Start: len(src), End: len(src)}) {
		t.Errorf("span = %s, want the end of input", d.Span())
	}
}

func TestUnclosedBlock(t *testing.T) {
	_, err := parser.Parse("int main(void) { return 0;")
	d, ok := errors.AsDiagnostic(err)
	if !ok || d.Error() != "Expected '}', but found end of file" {
		t.Errorf("got %v", err)
	}
}

func TestLexErrorsPassThrough(t *testing.T) {
	_, err := parser.Parse("int x = 'ab';")
	d, ok := errors.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if _, ok := d.(errors.MalformedCharacter); !ok {
		t.Errorf("got %s", repr.String(d))
	}
}

func TestParseTokensAddsEOF(t *testing.T) {
	toks, err := lexer.Tokenize("int x;")
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.ParseTokens(toks[:len(toks)-1])
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Decls) != 1 {
		t.Errorf("got %d declarations", len(prog.Decls))
	}

	if prog, err := parser.ParseTokens(nil); err != nil || len(prog.Decls) != 0 {
		t.Errorf("ParseTokens(nil) = %s, %v", repr.String(prog), err)
	}
}

func TestEmptyProgram(t *testing.T) {
	prog, err := parser.Parse("  // nothing here\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := ast.Print(prog); got != "Program" {
		t.Errorf("Print = %q", got)
	}
}

func TestIDsRestartPerParse(t *testing.T) {
	for i := 0; i < 2; i++ {
		prog, err := parser.Parse("int x = 7;")
		if err != nil {
			t.Fatal(err)
		}
		if id := prog.Decls[0].(*ast.VarDecl).Init.Info().ID; id != 1 {
			t.Errorf("parse %d: first id = %d", i, id)
		}
	}
}
