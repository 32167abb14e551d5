package parser

import (
	"runtime"

	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/lexer"
	"github.com/pontaoski/cfront/types"
	"github.com/ztrue/tracerr"
)

// Parser is a recursive descent parser over a fully lexed token slice.
// Expression ids come from a counter local to the parser, so each parse
// numbers its nodes from 1.
type Parser struct {
	toks   []types.Token
	pos    int
	lastID int
}

// NewParser wraps toks, appending an EOF token if the slice does not end
// with one.
func NewParser(toks []types.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != types.EOF {
		end := 0
		if len(toks) > 0 {
			end = toks[len(toks)-1].Location.End
		}
		toks = append(toks, types.Token{
			Kind:     types.EOF,
			Location: types.Span{Start: end, End: end},
		})
	}
	return &Parser{toks: toks}
}

// Parse lexes and parses a translation unit.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

func ParseTokens(toks []types.Token) (*ast.Program, error) {
	return NewParser(toks).Parse()
}

// Parse stops at the first ill-formed construct. The returned error wraps
// an errors.Diagnostic; use errors.AsDiagnostic to get at it.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			rerr, ok := r.(error)
			if ok {
				prog = nil
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	prog = &ast.Program{}
	for !p.PeekIs(types.EOF) {
		prog.Decls = append(prog.Decls, p.parseDeclaration())
	}
	prog.Pos = types.Span{Start: 0, End: p.peek().Location.End}
	return prog, nil
}

func (p *Parser) peek() types.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens ahead, stopping at EOF.
func (p *Parser) peekAt(n int) types.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) PeekIs(k ...types.TokenKind) bool {
	kind := p.peek().Kind
	for _, want := range k {
		if kind == want {
			return true
		}
	}
	return false
}

// next consumes the current token. EOF is never consumed.
func (p *Parser) next() types.Token {
	tok := p.toks[p.pos]
	if tok.Kind != types.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) lexExpecting(k types.TokenKind) types.Token {
	if !p.PeekIs(k) {
		p.expected(k.String())
	}
	return p.next()
}

// expected fails with what was wanted and the current token.
func (p *Parser) expected(what string) {
	tok := p.peek()
	panic(errors.ExpectedGot{
		Expected: what,
		Found:    tok.Text,
		AtEOF:    tok.Kind == types.EOF,
		Location: tok.Location,
	})
}

// spanFrom runs from start to the end of the last consumed token.
func (p *Parser) spanFrom(start types.Span) types.Span {
	if p.pos == 0 {
		return start
	}
	return start.To(p.toks[p.pos-1].Location)
}

func (p *Parser) id() int {
	p.lastID++
	return p.lastID
}

// info numbers a finished expression. It must be called after the
// expression's children have been built.
func (p *Parser) info(span types.Span) ast.ExprInfo {
	return ast.ExprInfo{ID: p.id(), Pos: span}
}
