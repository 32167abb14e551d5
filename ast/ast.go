package ast

import "github.com/pontaoski/cfront/types"

// Node is implemented by everything in the tree. A node's span covers the
// spans of all of its children.
type Node interface {
	Span() types.Span
}

// Loc is embedded by declarations and statements.
type Loc struct {
	Pos types.Span
}

func (l Loc) Span() types.Span { return l.Pos }

type Program struct {
	Decls []Declaration
	Loc
}

type StorageClass int

const (
	NoStorage StorageClass = iota
	Static
	Extern
)

func (s StorageClass) String() string {
	switch s {
	case Static:
		return "Static"
	case Extern:
		return "Extern"
	}
	return ""
}

// BlockItem is a declaration or a statement.
type BlockItem interface {
	Node
	isBlockItem()
}

type Declaration interface {
	BlockItem
	isDeclaration()
}

type Statement interface {
	BlockItem
	isStatement()
}

type Param struct {
	Name string
	Type Type
	Loc
}

// FunctionDecl is a definition when Body is non-nil.
type FunctionDecl struct {
	Name    string
	Params  []*Param
	Type    *FunType
	Body    *Block
	Storage StorageClass
	Loc
}

func (*FunctionDecl) isBlockItem()   {}
func (*FunctionDecl) isDeclaration() {}

// VarDecl.Init is nil, an expression, or a *CompoundInit.
type VarDecl struct {
	Name    string
	Type    Type
	Init    Expression
	Storage StorageClass
	Loc
}

func (*VarDecl) isBlockItem()   {}
func (*VarDecl) isDeclaration() {}

type Block struct {
	Items []BlockItem
	Loc
}

type Return struct {
	Expr Expression // nil for a bare return
	Loc
}

type If struct {
	Cond Expression
	Then Statement
	Else Statement
	Loc
}

type CompoundStmt struct {
	Block *Block
	Loc
}

// ForInit is *InitDecl or *InitExpr.
type ForInit interface {
	Node
	isForInit()
}

type InitDecl struct {
	Decl *VarDecl
	Loc
}

type InitExpr struct {
	Expr Expression // may be nil
	Loc
}

func (*InitDecl) isForInit() {}
func (*InitExpr) isForInit() {}

type For struct {
	Init ForInit
	Cond Expression
	Post Expression
	Body Statement
	Loc
}

type While struct {
	Cond Expression
	Body Statement
	Loc
}

type DoWhile struct {
	Body Statement
	Cond Expression
	Loc
}

type Switch struct {
	Expr Expression
	Body Statement
	Loc
}

type Case struct {
	Value Expression
	Body  Statement
	Loc
}

type Default struct {
	Body Statement
	Loc
}

type Goto struct {
	Label string
	Loc
}

type Labeled struct {
	Label string
	Body  Statement
	Loc
}

type Break struct {
	Loc
}

type Continue struct {
	Loc
}

type ExprStmt struct {
	Expr Expression
	Loc
}

type Null struct {
	Loc
}

func (*Return) isBlockItem()       {}
func (*If) isBlockItem()           {}
func (*CompoundStmt) isBlockItem() {}
func (*For) isBlockItem()          {}
func (*While) isBlockItem()        {}
func (*DoWhile) isBlockItem()      {}
func (*Switch) isBlockItem()       {}
func (*Case) isBlockItem()         {}
func (*Default) isBlockItem()      {}
func (*Goto) isBlockItem()         {}
func (*Labeled) isBlockItem()      {}
func (*Break) isBlockItem()        {}
func (*Continue) isBlockItem()     {}
func (*ExprStmt) isBlockItem()     {}
func (*Null) isBlockItem()         {}

func (*Return) isStatement()       {}
func (*If) isStatement()           {}
func (*CompoundStmt) isStatement() {}
func (*For) isStatement()          {}
func (*While) isStatement()        {}
func (*DoWhile) isStatement()      {}
func (*Switch) isStatement()       {}
func (*Case) isStatement()         {}
func (*Default) isStatement()      {}
func (*Goto) isStatement()         {}
func (*Labeled) isStatement()      {}
func (*Break) isStatement()        {}
func (*Continue) isStatement()     {}
func (*ExprStmt) isStatement()     {}
func (*Null) isStatement()         {}

// ExprInfo carries what every expression has: the node id and the span.
type ExprInfo struct {
	ID  int
	Pos types.Span
}

func (e *ExprInfo) Info() *ExprInfo   { return e }
func (e *ExprInfo) Span() types.Span { return e.Pos }

type Expression interface {
	Node
	Info() *ExprInfo
	isExpression()
}

type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstLong
	ConstUInt
	ConstULong
	ConstDouble
	ConstChar
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "Int"
	case ConstLong:
		return "Long"
	case ConstUInt:
		return "UInt"
	case ConstULong:
		return "ULong"
	case ConstDouble:
		return "Double"
	case ConstChar:
		return "Char"
	}
	return "Unknown"
}

// Constant holds its value in Int for integer and character kinds and in
// Float for ConstDouble.
type Constant struct {
	Kind  ConstKind
	Int   uint64
	Float float64
	ExprInfo
}

type StringLiteral struct {
	Value []byte
	ExprInfo
}

type Var struct {
	Name string
	ExprInfo
}

type Cast struct {
	Target Type
	Expr   Expression
	ExprInfo
}

type UnaryOp int

const (
	Negate UnaryOp = iota
	Complement
	Not
	Increment
	Decrement
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "-"
	case Complement:
		return "~"
	case Not:
		return "!"
	case Increment:
		return "++"
	case Decrement:
		return "--"
	}
	return "?"
}

// Unary is a prefix operator; Increment and Decrement are the pre forms.
type Unary struct {
	Op   UnaryOp
	Expr Expression
	ExprInfo
}

// Postfix only uses Increment and Decrement.
type Postfix struct {
	Op   UnaryOp
	Expr Expression
	ExprInfo
}

type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Remainder
	BitAnd
	BitOr
	BitXor
	ShiftLeft
	ShiftRight
	And
	Or
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Assign
	AddAssign
	SubtractAssign
	MultiplyAssign
	DivideAssign
	RemainderAssign
	BitAndAssign
	BitOrAssign
	BitXorAssign
	ShiftLeftAssign
	ShiftRightAssign
)

var binaryOpToStr = [...]string{
	Add:              "+",
	Subtract:         "-",
	Multiply:         "*",
	Divide:           "/",
	Remainder:        "%",
	BitAnd:           "&",
	BitOr:            "|",
	BitXor:           "^",
	ShiftLeft:        "<<",
	ShiftRight:       ">>",
	And:              "&&",
	Or:               "||",
	Equal:            "==",
	NotEqual:         "!=",
	Less:             "<",
	LessEqual:        "<=",
	Greater:          ">",
	GreaterEqual:     ">=",
	Assign:           "=",
	AddAssign:        "+=",
	SubtractAssign:   "-=",
	MultiplyAssign:   "*=",
	DivideAssign:     "/=",
	RemainderAssign:  "%=",
	BitAndAssign:     "&=",
	BitOrAssign:      "|=",
	BitXorAssign:     "^=",
	ShiftLeftAssign:  "<<=",
	ShiftRightAssign: ">>=",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpToStr) {
		return "?"
	}
	return binaryOpToStr[op]
}

func (op BinaryOp) IsAssignment() bool {
	return op >= Assign
}

// Binary also represents plain and compound assignment.
type Binary struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
	ExprInfo
}

type Conditional struct {
	Cond Expression
	Then Expression
	Else Expression
	ExprInfo
}

type FunctionCall struct {
	Name string
	Args []Expression
	ExprInfo
}

type Subscript struct {
	Array Expression
	Index Expression
	ExprInfo
}

type AddressOf struct {
	Expr Expression
	ExprInfo
}

type Dereference struct {
	Expr Expression
	ExprInfo
}

type SizeOfExpr struct {
	Expr Expression
	ExprInfo
}

type SizeOfType struct {
	Type Type
	ExprInfo
}

// CompoundInit is a brace-enclosed initializer list. It only appears as
// a VarDecl initializer or nested inside another CompoundInit.
type CompoundInit struct {
	Items []Expression
	ExprInfo
}

func (*Constant) isExpression()      {}
func (*StringLiteral) isExpression() {}
func (*Var) isExpression()           {}
func (*Cast) isExpression()          {}
func (*Unary) isExpression()         {}
func (*Postfix) isExpression()       {}
func (*Binary) isExpression()        {}
func (*Conditional) isExpression()   {}
func (*FunctionCall) isExpression()  {}
func (*Subscript) isExpression()     {}
func (*AddressOf) isExpression()     {}
func (*Dereference) isExpression()   {}
func (*SizeOfExpr) isExpression()    {}
func (*SizeOfType) isExpression()    {}
func (*CompoundInit) isExpression()  {}
