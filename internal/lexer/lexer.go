package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-cfgconv/internal/token"
)

// Lexer turns value literals and type expressions into tokens.
type Lexer struct {
	input  string
	pos    int  // offset of ch
	next   int  // offset after ch
	ch     rune // -1 at end of input
	line   int
	column int
	buf    strings.Builder
}

// New creates and returns a new Lexer over src.
func New(src string) *Lexer {
	l := &Lexer{input: src, line: 1}
	l.readRune()
	return l
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	tok := token.Token{Line: l.line, Column: l.column}
	switch l.ch {
	case '[', ']', '(', ')', ',':
		tok.Type = token.Type(l.ch)
		tok.Literal = string(l.ch)
	case '\r':
		if l.peekRune() == '\n' {
			l.advance()
			tok.Type = token.NEWLINE
			tok.Literal = "\r\n"
		} else {
			tok.Type = token.ILLEGAL
			tok.Literal = "\r"
		}
	case '\n':
		tok.Type = token.NEWLINE
		tok.Literal = "\n"
	case '#':
		tok.Type = token.COMMENT
		tok.Literal = l.readComment()
		return tok
	case '"':
		lit, ok := l.readString()
		tok.Type = token.STRING
		if !ok {
			tok.Type = token.ILLEGAL
		}
		tok.Literal = lit
		return tok
	case -1:
		tok.Type = token.EOF
		return tok
	default:
		if isDigit(l.ch) || ((l.ch == '-' || l.ch == '+') && isDigit(l.peekRune())) {
			lit := l.readNumber()
			tok.Type = token.NUMBER
			if !IsNumber(lit) {
				tok.Type = token.ILLEGAL
			}
			tok.Literal = lit
			return tok
		}
		if isIdentifierStart(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		}
		tok.Type = token.ILLEGAL
		if l.ch == utf8.RuneError {
			tok.Literal = "invalid utf-8"
		} else {
			tok.Literal = string(l.ch)
		}
	}
	l.advance()
	return tok
}

func (l *Lexer) readRune() {
	if l.next >= len(l.input) {
		l.pos = len(l.input)
		l.ch = -1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.pos = l.next
	l.next += size
	l.ch = r
	l.column++
}

func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.readRune()
}

func (l *Lexer) peekRune() rune {
	if l.next >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.input[l.pos:], s)
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' {
		l.advance()
	}
}

func (l *Lexer) readComment() string {
	l.advance() // consume '#'
	for l.ch == ' ' || l.ch == '\t' {
		l.advance()
	}
	l.buf.Reset()
	for l.ch != '\n' && l.ch != '\r' && l.ch != -1 {
		l.buf.WriteRune(l.ch)
		l.advance()
	}
	return l.buf.String()
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentifierStart(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	l.advance() // sign or first digit
	for isDigit(l.ch) || isIdentifierStart(l.ch) || l.ch == '.' ||
		((l.ch == '-' || l.ch == '+') && (l.input[l.pos-1] == 'e' || l.input[l.pos-1] == 'E')) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readString() (string, bool) {
	if l.hasPrefix(`"""`) {
		return l.readMultilineString()
	}
	return l.readSingleLineString()
}

func (l *Lexer) readSingleLineString() (string, bool) {
	l.advance() // consume opening quote
	l.buf.Reset()
	for {
		switch {
		case l.ch == '"':
			l.advance()
			return l.buf.String(), true
		case l.ch == '\n' || l.ch == -1:
			return "unterminated string", false
		case l.ch == '\\':
			r, errMsg := l.readEscapeSequence()
			if errMsg != "" {
				return errMsg, false
			}
			l.buf.WriteRune(r)
		case l.ch == utf8.RuneError:
			return "invalid utf-8 sequence in string", false
		case isForbiddenControlChar(l.ch):
			return fmt.Sprintf("forbidden control character U+%04X in string", l.ch), false
		default:
			l.buf.WriteRune(l.ch)
		}
		l.advance()
	}
}

func (l *Lexer) readMultilineString() (string, bool) {
	l.advance()
	l.advance()
	l.advance()
	if l.ch == '\n' {
		l.advance()
	}
	l.buf.Reset()
	for {
		switch {
		case l.ch == -1:
			return "unterminated multiline string", false
		case l.hasPrefix(`"""`):
			l.advance()
			l.advance()
			l.advance()
			return l.buf.String(), true
		case l.ch == utf8.RuneError:
			return "invalid utf-8 sequence in string", false
		case l.ch != '\n' && isForbiddenControlChar(l.ch):
			return fmt.Sprintf("forbidden control character U+%04X in multiline string", l.ch), false
		}
		l.buf.WriteRune(l.ch)
		l.advance()
	}
}

func (l *Lexer) readEscapeSequence() (rune, string) {
	l.advance() // consume backslash
	switch l.ch {
	case 'b', 'f', 'n', 'r', 't', '"', '\\', '/':
		return unescape(l.ch), ""
	case 'u':
		var val rune
		for range 4 {
			l.advance()
			d, ok := hexDigit(l.ch)
			if !ok {
				return 0, "invalid unicode escape"
			}
			val = val*16 + d
		}
		if val >= 0xD800 && val <= 0xDFFF {
			return 0, "invalid unicode scalar value (surrogate pair)"
		}
		return val, ""
	default:
		return 0, fmt.Sprintf("invalid escape sequence \\%c", l.ch)
	}
}

// IsNumber reports whether s is a well-formed decimal literal: an optional
// sign, an integer part without leading zeros, an optional fraction and an
// optional exponent.
func IsNumber(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	i = consumeDigits(s, i)
	if i == start || (i-start > 1 && s[start] == '0') {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		fraction := i
		i = consumeDigits(s, i)
		if i == fraction {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exponent := i
		i = consumeDigits(s, i)
		if i == exponent {
			return false
		}
	}
	return i == len(s)
}

func consumeDigits(s string, i int) int {
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	return i
}

func hexDigit(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

func isForbiddenControlChar(ch rune) bool {
	return (ch >= 0x00 && ch <= 0x08) || (ch >= 0x0A && ch <= 0x1F) || ch == 0x7F
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentifierStart(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func unescape(ch rune) rune {
	switch ch {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	return ch
}
