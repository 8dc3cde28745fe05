package json5parser_airp

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// lexer generates tokens from JSON5 text.
// It is a state machine pulled by next: each lexFunc sends at most one
// token. After sending an error token or the end of input the lexer quits
// and next keeps returning that last token.
type lexer struct {
	mode       lexFunc
	data       string
	start      int
	pos        int
	row, col   int // position of pos
	srow, scol int // position of start
	out        *token
	last       token
	buf        strings.Builder
}

type lexFunc func(*lexer) lexFunc

func newLexer(data string) *lexer {
	return &lexer{
		mode: noneMode,
		data: data,
		row:  1,
		col:  1,
	}
}

// next runs the state machine until a token is sent.
func (l *lexer) next() token {
	for l.out == nil {
		if l.mode == nil {
			return l.last
		}
		l.mode = l.mode(l)
	}
	t := *l.out
	l.out = nil
	l.last = t
	return t
}

// lexSend sends t positioned at the start of the current lexeme.
func lexSend(l *lexer, f lexFunc, t token) lexFunc {
	t.Position = [2]int{l.srow, l.scol}
	l.out = &t
	return f
}

// lexErrorf sends an error token positioned at the current rune.
func lexErrorf(l *lexer, format string, args ...interface{}) lexFunc {
	l.srow, l.scol = l.row, l.col
	return lexSend(l, nil, token{
		Type:  errToken,
		Value: fmt.Sprintf(format, args...),
	})
}

func (l *lexer) mark() {
	l.start = l.pos
	l.srow, l.scol = l.row, l.col
}

// peek returns the rune at the current position and its width.
// A width of 0 signals the end of input.
func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.data) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.data[l.pos:])
}

func (l *lexer) advance() rune {
	r, w := l.peek()
	l.pos += w
	switch r {
	case '\n', '\u2028', '\u2029':
		l.row++
		l.col = 1
	case '\r':
		if strings.HasPrefix(l.data[l.pos:], "\n") {
			l.col++
		} else {
			l.row++
			l.col = 1
		}
	default:
		l.col++
	}
	return r
}

// digits consumes ASCII digits accepted by ok and returns their count.
func (l *lexer) digits(ok func(byte) bool) int {
	n := 0
	for l.pos < len(l.data) && ok(l.data[l.pos]) {
		l.pos++
		l.col++
		n++
	}
	return n
}

// hex consumes exactly n hexadecimal digits.
func (l *lexer) hex(n int) (rune, bool) {
	if l.pos+n > len(l.data) || !allDigits(l.data[l.pos:l.pos+n], isHexDigit) {
		return 0, false
	}
	v, err := strconv.ParseUint(l.data[l.pos:l.pos+n], 16, 32)
	if err != nil {
		return 0, false
	}
	l.pos += n
	l.col += n
	return rune(v), true
}

func noneMode(l *lexer) lexFunc {
	l.mark()
	r, w := l.peek()
	switch {
	case w == 0:
		return lexSend(l, nil, token{Type: eofToken})
	case isSpace(r):
		l.advance()
		return noneMode
	case r == '/':
		return commentMode
	case r == '{', r == '}', r == '[', r == ']', r == ':', r == ',':
		l.advance()
		return lexSend(l, noneMode, newToken(r))
	case r == '"', r == '\'':
		return stringMode
	case r == '+', r == '-', r == '.', isDigitRune(r):
		return numberMode
	case r == '\\', isIdentStart(r):
		return identMode
	case r == utf8.RuneError && w == 1:
		return lexErrorf(l, "invalid UTF-8 encoding")
	default:
		return lexErrorf(l, "invalid character %q", r)
	}
}

func commentMode(l *lexer) lexFunc {
	l.advance()
	switch r, _ := l.peek(); r {
	case '/':
		for r, w := l.peek(); w > 0 && !isLineTerminator(r); r, w = l.peek() {
			l.advance()
		}
		return noneMode
	case '*':
		l.advance()
		end := strings.Index(l.data[l.pos:], "*/")
		if end < 0 {
			return lexSend(l, nil, token{
				Type:  errToken,
				Value: "unterminated block comment",
			})
		}
		for stop := l.pos + end + len("*/"); l.pos < stop; {
			l.advance()
		}
		return noneMode
	default:
		return lexSend(l, nil, token{
			Type:  errToken,
			Value: "invalid character '/'",
		})
	}
}

func stringMode(l *lexer) lexFunc {
	quote := l.advance()
	l.buf.Reset()
	for {
		r, w := l.peek()
		switch {
		case w == 0:
			return lexSend(l, nil, token{
				Type:  errToken,
				Value: "unterminated string",
			})
		case r == quote:
			l.advance()
			return lexSend(l, noneMode, token{
				Type:  stringToken,
				Value: l.buf.String(),
			})
		case r == '\n', r == '\r':
			return lexErrorf(l, "unescaped line break in string")
		case r == utf8.RuneError && w == 1:
			return lexErrorf(l, "invalid UTF-8 encoding in string")
		case r == '\\':
			l.advance()
			if err := l.escape(); err != nil {
				return lexErrorf(l, "%v", err)
			}
		default:
			l.buf.WriteRune(r)
			l.advance()
		}
	}
}

var singleEscapes = map[rune]rune{
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// escape decodes the escape sequence following a backslash into buf.
func (l *lexer) escape() error {
	r, w := l.peek()
	if c, ok := singleEscapes[r]; ok {
		l.advance()
		l.buf.WriteRune(c)
		return nil
	}
	switch {
	case w == 0:
		return errors.New("unterminated string")
	case r == '0':
		l.advance()
		if r, _ := l.peek(); isDigitRune(r) {
			return errors.New("octal escape sequences are not allowed")
		}
		l.buf.WriteByte(0)
	case isDigitRune(r):
		return errors.Errorf("invalid escape sequence \\%c", r)
	case r == 'x':
		l.advance()
		v, ok := l.hex(2)
		if !ok {
			return errors.New("invalid \\x escape sequence")
		}
		l.buf.WriteRune(v)
	case r == 'u':
		l.advance()
		v, ok := l.hex(4)
		if !ok {
			return errors.New("invalid \\u escape sequence")
		}
		if utf16.IsSurrogate(v) {
			v = l.surrogatePair(v)
		}
		l.buf.WriteRune(v)
	case r == '\r':
		l.advance()
		if r, _ := l.peek(); r == '\n' {
			l.advance()
		}
	case isLineTerminator(r):
		l.advance()
	case r == utf8.RuneError && w == 1:
		return errors.New("invalid UTF-8 encoding in string")
	default:
		l.advance()
		l.buf.WriteRune(r)
	}
	return nil
}

// surrogatePair combines the high surrogate hi with a directly following
// \uXXXX low surrogate. Unpaired surrogates become U+FFFD.
func (l *lexer) surrogatePair(hi rune) rune {
	if hi >= 0xdc00 || !strings.HasPrefix(l.data[l.pos:], `\u`) {
		return utf8.RuneError
	}
	pos, col := l.pos, l.col
	l.pos += 2
	l.col += 2
	lo, ok := l.hex(4)
	if !ok || lo < 0xdc00 || lo > 0xdfff {
		l.pos, l.col = pos, col
		return utf8.RuneError
	}
	return utf16.DecodeRune(hi, lo)
}

func numberMode(l *lexer) lexFunc {
	if r, _ := l.peek(); r == '+' || r == '-' {
		l.advance()
	}
	r, _ := l.peek()
	switch {
	case r == 'I', r == 'N':
		for r, w := l.peek(); w > 0 && isIdentPart(r); r, w = l.peek() {
			l.advance()
		}
		lit := l.data[l.start:l.pos]
		if word := lit[1:]; word != "Infinity" && word != "NaN" {
			return lexSend(l, nil, token{
				Type:  errToken,
				Value: fmt.Sprintf("invalid number %q", lit),
			})
		}
		return lexSend(l, noneMode, token{Type: numberToken, Value: lit})
	case r == '0' && l.pos+1 < len(l.data) && (l.data[l.pos+1] == 'x' || l.data[l.pos+1] == 'X'):
		l.pos += 2
		l.col += 2
		if l.digits(isHexDigit) == 0 {
			return lexErrorf(l, "missing digits in hexadecimal number")
		}
	default:
		intDigits := 0
		if r == '0' {
			l.advance()
			intDigits = 1
			if r, _ := l.peek(); isDigitRune(r) {
				return lexErrorf(l, "leading zero in number")
			}
		} else {
			intDigits = l.digits(isDigit)
		}
		fracDigits := 0
		if r, _ := l.peek(); r == '.' {
			l.advance()
			fracDigits = l.digits(isDigit)
		}
		if intDigits == 0 && fracDigits == 0 {
			return lexSend(l, nil, token{
				Type:  errToken,
				Value: fmt.Sprintf("invalid number %q", l.data[l.start:l.pos]),
			})
		}
		if r, _ := l.peek(); r == 'e' || r == 'E' {
			l.advance()
			if r, _ := l.peek(); r == '+' || r == '-' {
				l.advance()
			}
			if l.digits(isDigit) == 0 {
				return lexErrorf(l, "missing exponent digits in number")
			}
		}
	}
	if r, w := l.peek(); w > 0 && (r == '\\' || isIdentPart(r)) {
		return lexErrorf(l, "invalid character %q after number", r)
	}
	return lexSend(l, noneMode, token{
		Type:  numberToken,
		Value: l.data[l.start:l.pos],
	})
}

var keywords = map[string]tokenType{
	"null":  nullToken,
	"true":  trueToken,
	"false": falseToken,
}

func identMode(l *lexer) lexFunc {
	l.buf.Reset()
	escaped := false
	for first := true; ; first = false {
		r, w := l.peek()
		if r == '\\' {
			l.advance()
			if r, _ := l.peek(); r != 'u' {
				return lexErrorf(l, "invalid escape sequence in identifier")
			}
			l.advance()
			v, ok := l.hex(4)
			if !ok {
				return lexErrorf(l, "invalid \\u escape sequence")
			}
			if first && !isIdentStart(v) || !first && !isIdentPart(v) {
				return lexErrorf(l, "invalid identifier character %q", v)
			}
			escaped = true
			l.buf.WriteRune(v)
			continue
		}
		if w == 0 || first && !isIdentStart(r) || !first && !isIdentPart(r) {
			break
		}
		l.advance()
		l.buf.WriteRune(r)
	}
	name := l.buf.String()
	if typ, ok := keywords[name]; ok && !escaped {
		return lexSend(l, noneMode, token{Type: typ, Value: name})
	}
	return lexSend(l, noneMode, token{Type: identToken, Value: name})
}

// helper functions

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func isDigitRune(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' ||
		unicode.In(r, unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || r == '\u200c' || r == '\u200d' ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
