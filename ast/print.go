package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tree struct {
	label    string
	children []*tree
}

func node(label string, children ...*tree) *tree {
	return &tree{label: label, children: children}
}

func (t *tree) add(children ...*tree) *tree {
	t.children = append(t.children, children...)
	return t
}

func (t *tree) writeChildren(b *strings.Builder, prefix string) {
	for i, c := range t.children {
		branch, ext := "├── ", "│   "
		if i == len(t.children)-1 {
			branch, ext = "╰── ", "    "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(c.label)
		b.WriteByte('\n')
		c.writeChildren(b, prefix+ext)
	}
}

// Print renders prog as an indented tree, one node per line, without a
// trailing newline.
func Print(prog *Program) string {
	root := node("Program")
	for _, d := range prog.Decls {
		root.add(declTree(d))
	}

	var b strings.Builder
	b.WriteString(root.label)
	b.WriteByte('\n')
	root.writeChildren(&b, "    ")
	return strings.TrimSuffix(b.String(), "\n")
}

func storageTree(t *tree, s StorageClass) *tree {
	if s != NoStorage {
		t.add(node(s.String()))
	}
	return t
}

func declTree(d Declaration) *tree {
	switch d := d.(type) {
	case *FunctionDecl:
		t := node(fmt.Sprintf("Function [%s]", d.Name))
		if len(d.Params) > 0 {
			params := node("Parameters")
			for _, p := range d.Params {
				params.add(node("Param",
					node(fmt.Sprintf("Name [%s]", p.Name)),
					node("Type", typeTree(p.Type)),
				))
			}
			t.add(params)
		}
		if d.Body != nil {
			t.add(node("Body", blockItems(d.Body)...))
		}
		return storageTree(t, d.Storage)
	case *VarDecl:
		return varTree(d)
	}
	panic(fmt.Sprintf("unhandled declaration %T", d))
}

func varTree(d *VarDecl) *tree {
	t := node("VarDeclaration",
		node(fmt.Sprintf("Name [%s]", d.Name)),
		node("Type", typeTree(d.Type)),
	)
	if d.Init != nil {
		t.add(node("Initializer", exprTree(d.Init)))
	}
	return storageTree(t, d.Storage)
}

func blockItems(b *Block) []*tree {
	var items []*tree
	for _, item := range b.Items {
		switch item := item.(type) {
		case Declaration:
			items = append(items, declTree(item))
		case Statement:
			items = append(items, stmtTree(item))
		}
	}
	return items
}

func optExpr(e Expression) *tree {
	if e == nil {
		return node("Empty")
	}
	return exprTree(e)
}

func stmtTree(s Statement) *tree {
	switch s := s.(type) {
	case *Return:
		t := node("Return")
		if s.Expr != nil {
			t.add(exprTree(s.Expr))
		}
		return t
	case *If:
		t := node("If",
			node("Condition", exprTree(s.Cond)),
			node("Then", stmtTree(s.Then)),
		)
		if s.Else != nil {
			t.add(node("Else", stmtTree(s.Else)))
		}
		return t
	case *CompoundStmt:
		return node("Block", blockItems(s.Block)...)
	case *For:
		var init *tree
		switch i := s.Init.(type) {
		case *InitDecl:
			init = varTree(i.Decl)
		case *InitExpr:
			init = optExpr(i.Expr)
		}
		return node("For",
			node("Init", init),
			node("Condition", optExpr(s.Cond)),
			node("Condition", optExpr(s.Post)),
			node("Body", stmtTree(s.Body)),
		)
	case *While:
		return node("While",
			node("Condition", exprTree(s.Cond)),
			node("Body", stmtTree(s.Body)),
		)
	case *DoWhile:
		return node("DoWhile",
			node("Body", stmtTree(s.Body)),
			node("Condition", exprTree(s.Cond)),
		)
	case *Switch:
		return node("Switch",
			node("Expression", exprTree(s.Expr)),
			stmtTree(s.Body),
		)
	case *Case:
		if c, ok := s.Value.(*Constant); ok {
			return node(fmt.Sprintf("Case [%s]", constValue(c)), stmtTree(s.Body))
		}
		return node("Case",
			node("Value", exprTree(s.Value)),
			stmtTree(s.Body),
		)
	case *Default:
		return node("Default", stmtTree(s.Body))
	case *Goto:
		return node(fmt.Sprintf("Goto [%s]", s.Label))
	case *Labeled:
		return node(fmt.Sprintf("Label [%s]", s.Label), stmtTree(s.Body))
	case *Break:
		return node("Break")
	case *Continue:
		return node("Continue")
	case *ExprStmt:
		return exprTree(s.Expr)
	case *Null:
		return node("Null")
	}
	panic(fmt.Sprintf("unhandled statement %T", s))
}

func exprTree(e Expression) *tree {
	id := e.Info().ID
	switch e := e.(type) {
	case *Constant:
		return node(fmt.Sprintf("Constant %s [%s]", e.Kind, constValue(e)))
	case *StringLiteral:
		return node(fmt.Sprintf("<%d> %s", id, quote(e.Value)))
	case *Var:
		return node(fmt.Sprintf("<%d> Var [%s]", id, e.Name))
	case *Cast:
		return node(fmt.Sprintf("<%d> Cast", id),
			node("Target", typeTree(e.Target)),
			node("Expression", exprTree(e.Expr)),
		)
	case *Unary:
		return node(fmt.Sprintf("<%d> Unary [%s]", id, e.Op), exprTree(e.Expr))
	case *Postfix:
		return node(fmt.Sprintf("<%d> Postfix [%s]", id, e.Op), exprTree(e.Expr))
	case *Binary:
		return node(fmt.Sprintf("<%d>  [%s]", id, e.Op), exprTree(e.Left), exprTree(e.Right))
	case *Conditional:
		return node(fmt.Sprintf("<%d> Conditional [?]", id),
			exprTree(e.Cond), exprTree(e.Then), exprTree(e.Else))
	case *FunctionCall:
		t := node(fmt.Sprintf("<%d> FunctionCall [%s]", id, e.Name))
		for _, arg := range e.Args {
			t.add(exprTree(arg))
		}
		return t
	case *Subscript:
		return node(fmt.Sprintf("<%d> Subscript", id), exprTree(e.Array), exprTree(e.Index))
	case *AddressOf:
		return node(fmt.Sprintf("<%d> AddressOf", id), exprTree(e.Expr))
	case *Dereference:
		return node(fmt.Sprintf("<%d> Dereference", id), exprTree(e.Expr))
	case *SizeOfExpr:
		return node(fmt.Sprintf("<%d> SizeOfExpr", id), exprTree(e.Expr))
	case *SizeOfType:
		return node(fmt.Sprintf("<%d> SizeOfType", id), typeTree(e.Type))
	case *CompoundInit:
		t := node("Compound")
		for _, item := range e.Items {
			t.add(exprTree(item))
		}
		return t
	}
	panic(fmt.Sprintf("unhandled expression %T", e))
}

func typeTree(t Type) *tree {
	switch t := t.(type) {
	case Primitive:
		return node(t.String())
	case *Pointer:
		return node("Pointer", typeTree(t.Referenced))
	case *Array:
		return node("Array", node(strconv.FormatUint(t.Size, 10)), typeTree(t.Elem))
	case *FunType:
		f := node("Function")
		if len(t.Params) > 0 {
			params := node("Parameters")
			for _, p := range t.Params {
				params.add(typeTree(p))
			}
			f.add(params)
		}
		return f.add(node("Return", typeTree(t.Ret)))
	}
	panic(fmt.Sprintf("unhandled type %T", t))
}

func constValue(c *Constant) string {
	if c.Kind == ConstDouble {
		return FormatDouble(c.Float)
	}
	return strconv.FormatUint(c.Int, 10)
}

// FormatDouble writes f in the shortest exponent form that round-trips,
// with the sign always present: 1.5 is "+1.5e0", 0.01 is "+1e-2".
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mant, exp := s[:i], s[i+1:]
	e, _ := strconv.Atoi(exp)
	if !strings.HasPrefix(mant, "-") {
		mant = "+" + mant
	}
	return mant + "e" + strconv.Itoa(e)
}

func quote(b []byte) string {
	var s strings.Builder
	s.WriteByte('"')
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		switch {
		case r == '\n':
			s.WriteString(`\n`)
		case r == '\t':
			s.WriteString(`\t`)
		case r == '\\':
			s.WriteString(`\\`)
		case r == '"':
			s.WriteString(`\"`)
		case r == 0:
			s.WriteString(`\0`)
		case r == utf8.RuneError && size == 1, r < 0x20, r == 0x7f:
			// Control bytes and invalid UTF-8 are shown as hex.
			fmt.Fprintf(&s, `\x%02x`, b[0])
		default:
			s.Write(b[:size])
		}
		b = b[size:]
	}
	s.WriteByte('"')
	return s.String()
}
