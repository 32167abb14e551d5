package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/types"
	"github.com/ztrue/tracerr"
)

// Lexer turns preprocessed C source into tokens. Positions are byte offsets.
type Lexer struct {
	src string
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Tokenize lexes the whole input. The returned slice always ends with a
// single EOF token.
func Tokenize(src string) ([]types.Token, error) {
	l := NewLexer(src)
	var toks []types.Token
	for {
		tok, err := l.Lex()
		if err != nil {
			return nil, tracerr.Wrap(err)
		}
		toks = append(toks, tok)
		if tok.Kind == types.EOF {
			return toks, nil
		}
	}
}

func (l *Lexer) at(i int) byte {
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func firstChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func otherChar(c byte) bool {
	return firstChar(c) || isDigit(c)
}

func isSuffixChar(c byte) bool {
	return c == 'u' || c == 'U' || c == 'l' || c == 'L'
}

// Lex returns the next token. Once the input is exhausted it keeps
// returning EOF.
func (l *Lexer) Lex() (types.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return types.Token{}, err
	}
	if l.pos >= len(l.src) {
		return types.Token{
			Kind:     types.EOF,
			Location: types.Span{Start: len(l.src), End: len(l.src)},
		}, nil
	}

	c := l.src[l.pos]
	switch {
	case firstChar(c):
		return l.lexIdent(), nil
	case isDigit(c), c == '.' && isDigit(l.at(l.pos+1)):
		return l.lexNumber()
	case c == '\'':
		return l.lexChar()
	case c == '"':
		return l.lexString()
	}

	rest := l.src[l.pos:]
	for _, p := range types.Punctuators {
		if strings.HasPrefix(rest, p.Text) {
			return l.emit(p.Kind, l.pos+len(p.Text)), nil
		}
	}

	r, size := utf8.DecodeRuneInString(rest)
	return types.Token{}, errors.UnrecognizedCharacter{
		Char:     string(r),
		Location: types.Span{Start: l.pos, End: l.pos + size},
	}
}

// emit builds a token from the current position up to end and advances
// past it.
func (l *Lexer) emit(kind types.TokenKind, end int) types.Token {
	tok := types.Token{
		Kind:     kind,
		Location: types.Span{Start: l.pos, End: end},
		Text:     l.src[l.pos:end],
	}
	l.pos = end
	return tok
}

func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case isSpace(rest[0]):
			l.pos++
		case strings.HasPrefix(rest, "//"):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				l.pos = len(l.src)
			} else {
				l.pos += nl + 1
			}
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return errors.UnterminatedComment{
					Location: types.Span{Start: l.pos, End: l.pos + 2},
				}
			}
			l.pos += 2 + end + 2
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) lexIdent() types.Token {
	end := l.pos
	for end < len(l.src) && otherChar(l.src[end]) {
		end++
	}
	kind, ok := types.Keywords[l.src[l.pos:end]]
	if !ok {
		kind = types.IDENT
	}
	return l.emit(kind, end)
}

func (l *Lexer) lexNumber() (types.Token, error) {
	start := l.pos
	i := start
	for isDigit(l.at(i)) {
		i++
	}

	isDouble := false
	if l.at(i) == '.' {
		isDouble = true
		i++
		for isDigit(l.at(i)) {
			i++
		}
	}
	if c := l.at(i); c == 'e' || c == 'E' {
		j := i + 1
		if s := l.at(j); s == '+' || s == '-' {
			j++
		}
		// An exponent without digits is left for the trailing character
		// check below to reject.
		if isDigit(l.at(j)) {
			isDouble = true
			i = j
			for isDigit(l.at(i)) {
				i++
			}
		}
	}

	numEnd := i
	for isSuffixChar(l.at(i)) {
		i++
	}

	end := i
	for end < len(l.src) && (otherChar(l.src[end]) || l.src[end] == '.') {
		end++
	}
	malformed := errors.MalformedNumber{
		Text:     l.src[start:end],
		Location: types.Span{Start: start, End: end},
	}
	if end != i {
		return types.Token{}, malformed
	}

	digits := l.src[start:numEnd]
	suffix := l.src[numEnd:i]

	if isDouble {
		if suffix != "" {
			return types.Token{}, malformed
		}
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return types.Token{}, malformed
			}
		}
		tok := l.emit(types.DOUBLE_CONST, i)
		tok.Float = v
		return tok, nil
	}

	kind, ok := integerKind(suffix)
	if !ok {
		return types.Token{}, malformed
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return types.Token{}, errors.ConstantTooLarge{
			Text:     l.src[start:i],
			Location: types.Span{Start: start, End: i},
		}
	}
	tok := l.emit(kind, i)
	tok.Int = v
	return tok, nil
}

// integerKind maps an integer suffix to the constant's token kind. One u
// may lead or trail; the rest must be l, L, ll or LL.
func integerKind(suffix string) (types.TokenKind, bool) {
	unsigned := false
	s := suffix
	if strings.HasPrefix(s, "u") || strings.HasPrefix(s, "U") {
		unsigned = true
		s = s[1:]
	} else if strings.HasSuffix(s, "u") || strings.HasSuffix(s, "U") {
		unsigned = true
		s = s[:len(s)-1]
	}

	var long bool
	switch s {
	case "":
	case "l", "L", "ll", "LL":
		long = true
	default:
		return 0, false
	}

	switch {
	case unsigned && long:
		return types.ULONG_CONST, true
	case unsigned:
		return types.UINT_CONST, true
	case long:
		return types.LONG_CONST, true
	}
	return types.INT_CONST, true
}

var escapes = map[byte]byte{
	'\'': '\'',
	'"':  '"',
	'?':  '?',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'0':  0,
}

// escape decodes the escape sequence starting at the backslash at i.
func (l *Lexer) escape(i int) (byte, error) {
	if i+1 >= len(l.src) {
		return 0, errors.UnterminatedString{Location: types.Span{Start: l.pos, End: len(l.src)}}
	}
	v, ok := escapes[l.src[i+1]]
	if !ok {
		return 0, errors.InvalidEscape{
			Escape:   l.src[i : i+2],
			Location: types.Span{Start: i, End: i + 2},
		}
	}
	return v, nil
}

func (l *Lexer) lexChar() (types.Token, error) {
	start := l.pos
	i := start + 1
	if i >= len(l.src) {
		return types.Token{}, errors.UnterminatedString{Location: types.Span{Start: start, End: len(l.src)}}
	}

	var val byte
	switch c := l.src[i]; c {
	case '\'', '\n':
		return types.Token{}, errors.MalformedCharacter{
			Text:     l.src[start : i+1],
			Location: types.Span{Start: start, End: i + 1},
		}
	case '\\':
		v, err := l.escape(i)
		if err != nil {
			return types.Token{}, err
		}
		val = v
		i += 2
	default:
		val = c
		i++
	}

	if i >= len(l.src) {
		return types.Token{}, errors.UnterminatedString{Location: types.Span{Start: start, End: len(l.src)}}
	}
	if l.src[i] != '\'' {
		end := i
		for end < len(l.src) && l.src[end] != '\'' && l.src[end] != '\n' {
			end++
		}
		if end >= len(l.src) || l.src[end] == '\n' {
			return types.Token{}, errors.UnterminatedString{Location: types.Span{Start: start, End: end}}
		}
		return types.Token{}, errors.MalformedCharacter{
			Text:     l.src[start : end+1],
			Location: types.Span{Start: start, End: end + 1},
		}
	}

	tok := l.emit(types.CHAR_CONST, i+1)
	tok.Int = uint64(val)
	return tok, nil
}

func (l *Lexer) lexString() (types.Token, error) {
	start := l.pos
	var buf []byte
	i := start + 1
	for {
		if i >= len(l.src) {
			return types.Token{}, errors.UnterminatedString{Location: types.Span{Start: start, End: len(l.src)}}
		}
		switch c := l.src[i]; c {
		case '"':
			tok := l.emit(types.STRING, i+1)
			tok.Bytes = buf
			return tok, nil
		case '\n':
			return types.Token{}, errors.UnterminatedString{Location: types.Span{Start: start, End: i}}
		case '\\':
			v, err := l.escape(i)
			if err != nil {
				return types.Token{}, err
			}
			buf = append(buf, v)
			i += 2
		default:
			buf = append(buf, c)
			i++
		}
	}
}
