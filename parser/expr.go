package parser

import (
	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/types"
)

type binaryOperator struct {
	prec int
	op   ast.BinaryOp
}

const (
	assignPrec  = 1
	ternaryPrec = 2
)

var binaryOperators = map[types.TokenKind]binaryOperator{
	types.ASSIGN:     {assignPrec, ast.Assign},
	types.ADD_ASSIGN: {assignPrec, ast.AddAssign},
	types.SUB_ASSIGN: {assignPrec, ast.SubtractAssign},
	types.MUL_ASSIGN: {assignPrec, ast.MultiplyAssign},
	types.QUO_ASSIGN: {assignPrec, ast.DivideAssign},
	types.REM_ASSIGN: {assignPrec, ast.RemainderAssign},
	types.AND_ASSIGN: {assignPrec, ast.BitAndAssign},
	types.OR_ASSIGN:  {assignPrec, ast.BitOrAssign},
	types.XOR_ASSIGN: {assignPrec, ast.BitXorAssign},
	types.SHL_ASSIGN: {assignPrec, ast.ShiftLeftAssign},
	types.SHR_ASSIGN: {assignPrec, ast.ShiftRightAssign},

	types.LOR:  {3, ast.Or},
	types.LAND: {4, ast.And},
	types.OR:   {5, ast.BitOr},
	types.XOR:  {6, ast.BitXor},
	types.AND:  {7, ast.BitAnd},
	types.EQL:  {8, ast.Equal},
	types.NEQ:  {8, ast.NotEqual},
	types.LSS:  {9, ast.Less},
	types.LEQ:  {9, ast.LessEqual},
	types.GTR:  {9, ast.Greater},
	types.GEQ:  {9, ast.GreaterEqual},
	types.SHL:  {10, ast.ShiftLeft},
	types.SHR:  {10, ast.ShiftRight},
	types.ADD:  {11, ast.Add},
	types.SUB:  {11, ast.Subtract},
	types.MUL:  {12, ast.Multiply},
	types.QUO:  {12, ast.Divide},
	types.REM:  {12, ast.Remainder},
}

var constKinds = map[types.TokenKind]ast.ConstKind{
	types.INT_CONST:    ast.ConstInt,
	types.LONG_CONST:   ast.ConstLong,
	types.UINT_CONST:   ast.ConstUInt,
	types.ULONG_CONST:  ast.ConstULong,
	types.DOUBLE_CONST: ast.ConstDouble,
	types.CHAR_CONST:   ast.ConstChar,
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseBinary(0)
}

// parseBinary is a precedence climber. Assignment and the conditional are
// right associative; everything else binds left.
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseCast()
	for {
		tok := p.peek()

		if tok.Kind == types.QUESTION {
			if ternaryPrec < minPrec {
				return left
			}
			p.next()
			then := p.parseBinary(0)
			p.lexExpecting(types.COLON)
			els := p.parseBinary(ternaryPrec)
			left = &ast.Conditional{
				Cond:     left,
				Then:     then,
				Else:     els,
				ExprInfo: p.info(left.Span().To(els.Span())),
			}
			continue
		}

		op, ok := binaryOperators[tok.Kind]
		if !ok || op.prec < minPrec {
			return left
		}
		p.next()

		var right ast.Expression
		if op.prec == assignPrec {
			right = p.parseBinary(op.prec)
		} else {
			right = p.parseBinary(op.prec + 1)
		}
		left = &ast.Binary{
			Op:       op.op,
			Left:     left,
			Right:    right,
			ExprInfo: p.info(left.Span().To(right.Span())),
		}
	}
}

// startsTypeName reports whether the tokens at the cursor are an opening
// paren followed by a type specifier.
func (p *Parser) startsTypeName() bool {
	return p.PeekIs(types.LPAREN) && p.peekAt(1).Kind.IsTypeSpecifier()
}

func (p *Parser) parseCast() ast.Expression {
	if !p.startsTypeName() {
		return p.parseUnary()
	}
	open := p.next()
	target := p.parseTypeName()
	p.lexExpecting(types.RPAREN)
	e := p.parseCast()
	return &ast.Cast{Target: target, Expr: e, ExprInfo: p.info(open.Location.To(e.Span()))}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.peek()
	switch tok.Kind {
	case types.INC, types.DEC:
		p.next()
		e := p.parseCast()
		op := ast.Increment
		if tok.Kind == types.DEC {
			op = ast.Decrement
		}
		return &ast.Unary{Op: op, Expr: e, ExprInfo: p.info(tok.Location.To(e.Span()))}

	case types.SUB, types.BNOT, types.NOT:
		p.next()
		e := p.parseCast()
		op := ast.Negate
		switch tok.Kind {
		case types.BNOT:
			op = ast.Complement
		case types.NOT:
			op = ast.Not
		}
		return &ast.Unary{Op: op, Expr: e, ExprInfo: p.info(tok.Location.To(e.Span()))}

	case types.AND:
		p.next()
		e := p.parseCast()
		return &ast.AddressOf{Expr: e, ExprInfo: p.info(tok.Location.To(e.Span()))}

	case types.MUL:
		p.next()
		e := p.parseCast()
		return &ast.Dereference{Expr: e, ExprInfo: p.info(tok.Location.To(e.Span()))}

	case types.SIZEOF:
		p.next()
		if p.startsTypeName() {
			p.next()
			t := p.parseTypeName()
			p.lexExpecting(types.RPAREN)
			return &ast.SizeOfType{Type: t, ExprInfo: p.info(p.spanFrom(tok.Location))}
		}
		e := p.parseUnary()
		return &ast.SizeOfExpr{Expr: e, ExprInfo: p.info(tok.Location.To(e.Span()))}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	e := p.parsePrimary()
	for {
		tok := p.peek()
		switch tok.Kind {
		case types.LBRACK:
			p.next()
			index := p.parseExpression()
			p.lexExpecting(types.RBRACK)
			e = &ast.Subscript{Array: e, Index: index, ExprInfo: p.info(p.spanFrom(e.Span()))}
		case types.INC, types.DEC:
			p.next()
			op := ast.Increment
			if tok.Kind == types.DEC {
				op = ast.Decrement
			}
			e = &ast.Postfix{Op: op, Expr: e, ExprInfo: p.info(e.Span().To(tok.Location))}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	if tok.Kind.IsConstant() {
		p.next()
		return &ast.Constant{Kind: constKinds[tok.Kind], Int: tok.Int, Float: tok.Float, ExprInfo: p.info(tok.Location)}
	}

	switch tok.Kind {
	case types.STRING:
		p.next()
		return &ast.StringLiteral{Value: tok.Bytes, ExprInfo: p.info(tok.Location)}

	case types.IDENT:
		p.next()
		if !p.PeekIs(types.LPAREN) {
			return &ast.Var{Name: tok.Text, ExprInfo: p.info(tok.Location)}
		}
		p.next()
		var args []ast.Expression
		if !p.PeekIs(types.RPAREN) {
			for {
				args = append(args, p.parseExpression())
				if !p.PeekIs(types.COMMA) {
					break
				}
				p.next()
			}
		}
		p.lexExpecting(types.RPAREN)
		return &ast.FunctionCall{Name: tok.Text, Args: args, ExprInfo: p.info(p.spanFrom(tok.Location))}

	case types.LPAREN:
		p.next()
		e := p.parseExpression()
		p.lexExpecting(types.RPAREN)
		e.Info().Pos = p.spanFrom(tok.Location)
		return e
	}

	p.expected("expression")
	return nil
}
