package parser

import (
	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/types"
)

type specifiers struct {
	base       ast.Type
	storage    ast.StorageClass
	storageLoc types.Span
	span       types.Span
}

// parseSpecifiers reads a run of type specifiers and storage classes in
// any order and resolves the type specifiers to a base type.
func (p *Parser) parseSpecifiers() specifiers {
	if !p.peek().Kind.IsSpecifier() {
		p.expected("type specifier")
	}

	var s specifiers
	tally := map[types.TokenKind]int{}
	start := p.peek().Location
	for p.peek().Kind.IsSpecifier() {
		tok := p.next()
		if !tok.Kind.IsStorageClass() {
			tally[tok.Kind]++
			continue
		}
		if s.storage != ast.NoStorage {
			panic(errors.InvalidStorageClass{Location: tok.Location})
		}
		s.storageLoc = tok.Location
		if tok.Kind == types.STATIC {
			s.storage = ast.Static
		} else {
			s.storage = ast.Extern
		}
	}
	s.span = p.spanFrom(start)

	base, ok := resolveType(tally)
	if !ok {
		panic(errors.InvalidTypeSpecifier{Location: s.span})
	}
	s.base = base
	return s
}

// resolveType maps a multiset of type specifier keywords to a type. A
// second long is absorbed; anything else repeated is invalid.
func resolveType(tally map[types.TokenKind]int) (ast.Type, bool) {
	total := 0
	for _, n := range tally {
		total += n
	}
	void, double, char := tally[types.VOID], tally[types.DOUBLE], tally[types.CHAR]
	signed, unsigned := tally[types.SIGNED], tally[types.UNSIGNED]
	long, integer := tally[types.LONG], tally[types.INT]

	switch {
	case void == 1 && total == 1:
		return ast.Void, true
	case double == 1 && total == 1:
		return ast.Double, true
	case char == 1 && total == 1:
		return ast.Char, true
	case char == 1 && total == 2 && signed == 1:
		return ast.SChar, true
	case char == 1 && total == 2 && unsigned == 1:
		return ast.UChar, true
	case void > 0 || double > 0 || char > 0:
		return nil, false
	}

	if total == 0 || integer > 1 || long > 2 || signed > 1 || unsigned > 1 || (signed > 0 && unsigned > 0) {
		return nil, false
	}
	switch {
	case long > 0 && unsigned > 0:
		return ast.ULong, true
	case long > 0:
		return ast.Long, true
	case unsigned > 0:
		return ast.UInt, true
	}
	return ast.Int, true
}

// A declarator is parsed outside-in into this tree and then applied
// inside-out to the base type.
type declarator interface {
	declSpan() types.Span
}

type identDeclarator struct {
	name string
	span types.Span
}

type pointerDeclarator struct {
	inner declarator
	span  types.Span
}

type arrayDeclarator struct {
	inner declarator
	size  uint64
	span  types.Span
}

type funDeclarator struct {
	inner  declarator
	params []paramDeclarator
	span   types.Span
}

type paramDeclarator struct {
	base ast.Type
	decl declarator
	span types.Span
}

func (d *identDeclarator) declSpan() types.Span   { return d.span }
func (d *pointerDeclarator) declSpan() types.Span { return d.span }
func (d *arrayDeclarator) declSpan() types.Span   { return d.span }
func (d *funDeclarator) declSpan() types.Span     { return d.span }

func (p *Parser) parseDeclarator() declarator {
	if p.PeekIs(types.MUL) {
		star := p.next()
		inner := p.parseDeclarator()
		return &pointerDeclarator{inner: inner, span: star.Location.To(inner.declSpan())}
	}
	return p.parseDirectDeclarator()
}

func (p *Parser) parseDirectDeclarator() declarator {
	start := p.peek().Location

	var d declarator
	switch tok := p.peek(); tok.Kind {
	case types.IDENT:
		p.next()
		d = &identDeclarator{name: tok.Text, span: tok.Location}
	case types.LPAREN:
		p.next()
		d = p.parseDeclarator()
		p.lexExpecting(types.RPAREN)
	default:
		p.expected("identifier")
	}

	for {
		switch {
		case p.PeekIs(types.LBRACK):
			p.next()
			size := p.parseArraySize()
			d = &arrayDeclarator{inner: d, size: size, span: p.spanFrom(start)}
		case p.PeekIs(types.LPAREN):
			p.next()
			params := p.parseParamList()
			d = &funDeclarator{inner: d, params: params, span: p.spanFrom(start)}
		default:
			return d
		}
	}
}

// parseArraySize reads the size and the closing bracket.
func (p *Parser) parseArraySize() uint64 {
	tok := p.peek()
	if !tok.Kind.IsIntegerConstant() {
		p.expected("integer constant")
	}
	p.next()
	p.lexExpecting(types.RBRACK)
	return tok.Int
}

// parseParamList is called past the opening paren and consumes the
// closing one.
func (p *Parser) parseParamList() []paramDeclarator {
	if p.PeekIs(types.VOID) && p.peekAt(1).Kind == types.RPAREN {
		p.next()
		p.next()
		return nil
	}

	var params []paramDeclarator
	for {
		start := p.peek().Location
		spec := p.parseSpecifiers()
		if spec.storage != ast.NoStorage {
			panic(errors.InvalidStorageClass{Location: spec.storageLoc})
		}
		d := p.parseDeclarator()
		params = append(params, paramDeclarator{base: spec.base, decl: d, span: p.spanFrom(start)})

		if !p.PeekIs(types.COMMA) {
			break
		}
		p.next()
	}
	p.lexExpecting(types.RPAREN)
	return params
}

type declInfo struct {
	name   string
	typ    ast.Type
	params []*ast.Param
}

func (p *Parser) processDeclarator(d declarator, base ast.Type) declInfo {
	switch d := d.(type) {
	case *identDeclarator:
		return declInfo{name: d.name, typ: base}
	case *pointerDeclarator:
		return p.processDeclarator(d.inner, &ast.Pointer{Referenced: base})
	case *arrayDeclarator:
		return p.processDeclarator(d.inner, &ast.Array{Size: d.size, Elem: base})
	case *funDeclarator:
		ident, ok := d.inner.(*identDeclarator)
		if !ok {
			panic(errors.InvalidDeclarator{
				Reason:   "Can't apply additional type derivations to a function type",
				Location: d.span,
			})
		}

		fn := &ast.FunType{Ret: base}
		var params []*ast.Param
		for _, param := range d.params {
			info := p.processDeclarator(param.decl, param.base)
			if _, isFun := info.typ.(*ast.FunType); isFun {
				panic(errors.InvalidDeclarator{
					Reason:   "Function pointers in parameters aren't supported",
					Location: param.span,
				})
			}
			fn.Params = append(fn.Params, info.typ)
			params = append(params, &ast.Param{
				Name: info.name,
				Type: info.typ,
				Loc:  ast.Loc{Pos: param.span},
			})
		}
		return declInfo{name: ident.name, typ: fn, params: params}
	}
	panic("unhandled declarator")
}

// Abstract declarators appear in type names and have no identifier. A nil
// abstractDeclarator leaves the base type unchanged.
type abstractDeclarator interface {
	isAbstract()
}

type abstractPointer struct {
	inner abstractDeclarator
}

type abstractArray struct {
	inner abstractDeclarator
	size  uint64
}

func (*abstractPointer) isAbstract() {}
func (*abstractArray) isAbstract()   {}

func (p *Parser) parseAbstractDeclarator() abstractDeclarator {
	if p.PeekIs(types.MUL) {
		p.next()
		return &abstractPointer{inner: p.parseAbstractDeclarator()}
	}

	var d abstractDeclarator
	if p.PeekIs(types.LPAREN) {
		p.next()
		if !p.PeekIs(types.MUL, types.LPAREN, types.LBRACK) {
			p.expected("abstract declarator")
		}
		d = p.parseAbstractDeclarator()
		p.lexExpecting(types.RPAREN)
	}
	for p.PeekIs(types.LBRACK) {
		p.next()
		d = &abstractArray{inner: d, size: p.parseArraySize()}
	}
	return d
}

func processAbstract(d abstractDeclarator, base ast.Type) ast.Type {
	switch d := d.(type) {
	case *abstractPointer:
		return processAbstract(d.inner, &ast.Pointer{Referenced: base})
	case *abstractArray:
		return processAbstract(d.inner, &ast.Array{Size: d.size, Elem: base})
	}
	return base
}

// parseTypeName reads the type in a cast or sizeof, without the
// surrounding parens.
func (p *Parser) parseTypeName() ast.Type {
	spec := p.parseSpecifiers()
	if spec.storage != ast.NoStorage {
		panic(errors.InvalidStorageClass{Location: spec.storageLoc})
	}
	return processAbstract(p.parseAbstractDeclarator(), spec.base)
}

// parseDeclaration parses a function or variable declaration, including
// its terminating semicolon or function body.
func (p *Parser) parseDeclaration() ast.Declaration {
	start := p.peek().Location
	spec := p.parseSpecifiers()
	info := p.processDeclarator(p.parseDeclarator(), spec.base)

	if fn, ok := info.typ.(*ast.FunType); ok {
		decl := &ast.FunctionDecl{
			Name:    info.name,
			Params:  info.params,
			Type:    fn,
			Storage: spec.storage,
		}
		if p.PeekIs(types.LBRACE) {
			decl.Body = p.parseBlock()
		} else {
			p.lexExpecting(types.SEMICOLON)
		}
		decl.Pos = p.spanFrom(start)
		return decl
	}

	decl := &ast.VarDecl{
		Name:    info.name,
		Type:    info.typ,
		Storage: spec.storage,
	}
	if p.PeekIs(types.ASSIGN) {
		p.next()
		decl.Init = p.parseInitializer()
	}
	p.lexExpecting(types.SEMICOLON)
	decl.Pos = p.spanFrom(start)
	return decl
}

func (p *Parser) parseInitializer() ast.Expression {
	if !p.PeekIs(types.LBRACE) {
		return p.parseExpression()
	}

	start := p.next().Location
	var items []ast.Expression
	for {
		items = append(items, p.parseInitializer())
		if !p.PeekIs(types.COMMA) {
			break
		}
		p.next()
		if p.PeekIs(types.RBRACE) {
			break
		}
	}
	p.lexExpecting(types.RBRACE)
	return &ast.CompoundInit{Items: items, ExprInfo: p.info(p.spanFrom(start))}
}
