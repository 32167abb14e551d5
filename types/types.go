package types

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	IDENT
	INT_CONST   // 100
	LONG_CONST  // 100l
	UINT_CONST  // 100u
	ULONG_CONST // 100ul
	DOUBLE_CONST
	CHAR_CONST
	STRING

	// Keywords
	INT
	LONG
	UNSIGNED
	SIGNED
	CHAR
	DOUBLE
	VOID
	IF
	ELSE
	FOR
	WHILE
	DO
	BREAK
	CONTINUE
	RETURN
	SWITCH
	CASE
	DEFAULT
	GOTO
	STATIC
	EXTERN
	SIZEOF

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	SEMICOLON
	COMMA
	QUESTION
	COLON

	ASSIGN
	ADD_ASSIGN
	SUB_ASSIGN
	MUL_ASSIGN
	QUO_ASSIGN
	REM_ASSIGN
	AND_ASSIGN
	OR_ASSIGN
	XOR_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN

	ADD
	SUB
	MUL // also dereference
	QUO
	REM
	AND // also address-of
	OR
	XOR
	BNOT
	SHL
	SHR
	NOT
	LAND
	LOR
	LSS
	GTR
	LEQ
	GEQ
	EQL
	NEQ
	INC
	DEC
)

var tokenKindToStr = [...]string{
	EOF:          "end of file",
	IDENT:        "identifier",
	INT_CONST:    "integer constant",
	LONG_CONST:   "long constant",
	UINT_CONST:   "unsigned int constant",
	ULONG_CONST:  "unsigned long constant",
	DOUBLE_CONST: "double constant",
	CHAR_CONST:   "character constant",
	STRING:       "string literal",

	INT:      "'int'",
	LONG:     "'long'",
	UNSIGNED: "'unsigned'",
	SIGNED:   "'signed'",
	CHAR:     "'char'",
	DOUBLE:   "'double'",
	VOID:     "'void'",
	IF:       "'if'",
	ELSE:     "'else'",
	FOR:      "'for'",
	WHILE:    "'while'",
	DO:       "'do'",
	BREAK:    "'break'",
	CONTINUE: "'continue'",
	RETURN:   "'return'",
	SWITCH:   "'switch'",
	CASE:     "'case'",
	DEFAULT:  "'default'",
	GOTO:     "'goto'",
	STATIC:   "'static'",
	EXTERN:   "'extern'",
	SIZEOF:   "'sizeof'",

	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	LBRACK:    "'['",
	RBRACK:    "']'",
	SEMICOLON: "';'",
	COMMA:     "','",
	QUESTION:  "'?'",
	COLON:     "':'",

	ASSIGN:     "'='",
	ADD_ASSIGN: "'+='",
	SUB_ASSIGN: "'-='",
	MUL_ASSIGN: "'*='",
	QUO_ASSIGN: "'/='",
	REM_ASSIGN: "'%='",
	AND_ASSIGN: "'&='",
	OR_ASSIGN:  "'|='",
	XOR_ASSIGN: "'^='",
	SHL_ASSIGN: "'<<='",
	SHR_ASSIGN: "'>>='",

	ADD:  "'+'",
	SUB:  "'-'",
	MUL:  "'*'",
	QUO:  "'/'",
	REM:  "'%'",
	AND:  "'&'",
	OR:   "'|'",
	XOR:  "'^'",
	BNOT: "'~'",
	SHL:  "'<<'",
	SHR:  "'>>'",
	NOT:  "'!'",
	LAND: "'&&'",
	LOR:  "'||'",
	LSS:  "'<'",
	GTR:  "'>'",
	LEQ:  "'<='",
	GEQ:  "'>='",
	EQL:  "'=='",
	NEQ:  "'!='",
	INC:  "'++'",
	DEC:  "'--'",
}

// String is the form diagnostics use when a kind is expected.
func (t TokenKind) String() string {
	if t < 0 || int(t) >= len(tokenKindToStr) || tokenKindToStr[t] == "" {
		return fmt.Sprintf("TokenKind(%d)", int(t))
	}
	return tokenKindToStr[t]
}

var Keywords = map[string]TokenKind{
	"int":      INT,
	"long":     LONG,
	"unsigned": UNSIGNED,
	"signed":   SIGNED,
	"char":     CHAR,
	"double":   DOUBLE,
	"void":     VOID,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"do":       DO,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"switch":   SWITCH,
	"case":     CASE,
	"default":  DEFAULT,
	"goto":     GOTO,
	"static":   STATIC,
	"extern":   EXTERN,
	"sizeof":   SIZEOF,
}

// Punctuators is ordered longest first, so the first prefix match is the
// longest one.
var Punctuators = []struct {
	Text string
	Kind TokenKind
}{
	{"<<=", SHL_ASSIGN},
	{">>=", SHR_ASSIGN},
	{"++", INC},
	{"--", DEC},
	{"<<", SHL},
	{">>", SHR},
	{"<=", LEQ},
	{">=", GEQ},
	{"==", EQL},
	{"!=", NEQ},
	{"&&", LAND},
	{"||", LOR},
	{"+=", ADD_ASSIGN},
	{"-=", SUB_ASSIGN},
	{"*=", MUL_ASSIGN},
	{"/=", QUO_ASSIGN},
	{"%=", REM_ASSIGN},
	{"&=", AND_ASSIGN},
	{"|=", OR_ASSIGN},
	{"^=", XOR_ASSIGN},
	{"(", LPAREN},
	{")", RPAREN},
	{"{", LBRACE},
	{"}", RBRACE},
	{"[", LBRACK},
	{"]", RBRACK},
	{";", SEMICOLON},
	{",", COMMA},
	{"?", QUESTION},
	{":", COLON},
	{"=", ASSIGN},
	{"+", ADD},
	{"-", SUB},
	{"*", MUL},
	{"/", QUO},
	{"%", REM},
	{"&", AND},
	{"|", OR},
	{"^", XOR},
	{"~", BNOT},
	{"!", NOT},
	{"<", LSS},
	{">", GTR},
}

func (t TokenKind) IsTypeSpecifier() bool {
	switch t {
	case INT, LONG, UNSIGNED, SIGNED, CHAR, DOUBLE, VOID:
		return true
	}
	return false
}

func (t TokenKind) IsStorageClass() bool {
	return t == STATIC || t == EXTERN
}

func (t TokenKind) IsSpecifier() bool {
	return t.IsTypeSpecifier() || t.IsStorageClass()
}

func (t TokenKind) IsConstant() bool {
	switch t {
	case INT_CONST, LONG_CONST, UINT_CONST, ULONG_CONST, DOUBLE_CONST, CHAR_CONST:
		return true
	}
	return false
}

func (t TokenKind) IsIntegerConstant() bool {
	switch t {
	case INT_CONST, LONG_CONST, UINT_CONST, ULONG_CONST:
		return true
	}
	return false
}

// Span is the half-open byte range [Start, End) of the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

func SingleCharSpan(offset int) Span {
	return Span{offset, offset + 1}
}

// To joins two spans into the smallest span covering both.
func (s Span) To(o Span) Span {
	r := s
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	return r
}

func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

func (s Span) Len() int {
	return s.End - s.Start
}

type Token struct {
	Kind     TokenKind
	Location Span

	// Text is the lexeme exactly as it appears in the source.
	Text string

	// Decoded values; which one is set depends on Kind.
	Int   uint64
	Float float64
	Bytes []byte
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Text, t.Location)
}
