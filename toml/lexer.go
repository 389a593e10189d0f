package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits a document into tokens, one line of lookahead is never needed
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// NextToken returns the next token in the stream
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return l.tokenAt(TokenEOF, "", l.line, l.col)
	}

	line, col := l.line, l.col
	ch := l.peek()

	switch {
	case ch == '\n':
		l.advance()
		return l.tokenAt(TokenNewline, "\n", line, col)
	case ch == '#':
		return l.readComment(line, col)
	case ch == '=':
		l.advance()
		return l.tokenAt(TokenEqual, "=", line, col)
	case ch == '[':
		l.advance()
		return l.tokenAt(TokenLBracket, "[", line, col)
	case ch == ']':
		l.advance()
		return l.tokenAt(TokenRBracket, "]", line, col)
	case ch == '"':
		return l.readString(line, col)
	case isBareChar(ch) || ch == '+':
		return l.readBare(line, col)
	}

	l.advance()
	return l.tokenAt(TokenError, fmt.Sprintf("unexpected character: %q", ch), line, col)
}

func (l *Lexer) tokenAt(typ TokenType, literal string, line, col int) Token {
	return Token{Type: typ, Literal: literal, Line: line, Col: col}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch != ' ' && ch != '\t' && ch != '\r' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) readComment(line, col int) Token {
	l.advance() // '#'
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.tokenAt(TokenComment, string(l.input[start:l.pos]), line, col)
}

func (l *Lexer) readString(line, col int) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.advance()
		switch ch {
		case '\n':
			return l.tokenAt(TokenError, "newline in basic string", line, col)
		case '"':
			return l.tokenAt(TokenString, sb.String(), line, col)
		case '\\':
			esc := l.advance()
			switch esc {
			case '"', '\\':
				sb.WriteRune(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return l.tokenAt(TokenError, fmt.Sprintf("invalid escape \\%c", esc), line, col)
			}
		default:
			sb.WriteRune(ch)
		}
	}
	return l.tokenAt(TokenError, "unterminated string", line, col)
}

// readBare reads a bare key, number or bool and classifies it
func (l *Lexer) readBare(line, col int) Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.peek()
		if !isBareChar(ch) && ch != '+' && ch != '.' {
			break
		}
		l.advance()
	}
	lit := string(l.input[start:l.pos])

	switch {
	case lit == "true" || lit == "false":
		return l.tokenAt(TokenBool, lit, line, col)
	case isInteger(lit):
		return l.tokenAt(TokenInteger, lit, line, col)
	case isFloat(lit):
		return l.tokenAt(TokenFloat, lit, line, col)
	case isBareKey(lit):
		return l.tokenAt(TokenIdent, lit, line, col)
	}
	return l.tokenAt(TokenError, fmt.Sprintf("invalid bare value: %q", lit), line, col)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isBareChar(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_' || r == '-'
}

// isBareKey reports whether s can be written without quotes
func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isBareChar(r) {
			return false
		}
	}
	return true
}

func isInteger(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" || len(s) > 1 && s[0] == '0' {
		return s == "0"
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	intPart, frac, ok := strings.Cut(s, ".")
	if !ok || intPart == "" || frac == "" {
		return false
	}
	for _, r := range intPart + frac {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
