// Package lexer implements the lexical analysis (tokenization) for golox.
package lexer

import (
	"fmt"
	"golox/internal/diag"
	"golox/internal/span"
	"golox/internal/token"
	"strconv"
)

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source   string
	filename string

	start   int // offset of the first byte of the token being scanned
	current int // offset of the byte about to be read
	line    int // current line (1-based)
	col     int // current column (1-based)

	startPos span.Position
	tokens   []token.Token
	diags    []diag.Diagnostic
}

// New creates a new Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		line:     1,
		col:      1,
	}
}

// Tokenize scans the entire source and returns all tokens and diagnostics.
// The token slice always ends with exactly one EOF token. Each call rescans
// the source from the beginning.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Diagnostic) {
	l.current, l.line, l.col = 0, 1, 1
	l.tokens, l.diags = nil, nil

	for !l.isAtEnd() {
		l.start = l.current
		l.startPos = l.curPos()
		l.scanToken()
	}

	l.start = l.current
	l.startPos = l.curPos()
	l.addToken(token.EOF, nil)
	return l.tokens, l.diags
}

// ---- internal helpers ----

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() byte {
	ch := l.source[l.current]
	l.current++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// match consumes the current character only if it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.advance()
	return true
}

// curPos returns the current position as a span.Position.
func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.current, Line: l.line, Column: l.col}
}

// makeSpan returns a span from the token start to the current position.
func (l *Lexer) makeSpan() span.Span {
	return span.Span{Start: l.startPos, End: l.curPos()}
}

func (l *Lexer) addToken(kind token.Kind, literal any) {
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Lexeme:  l.source[l.start:l.current],
		Literal: literal,
		Span:    l.makeSpan(),
	})
}

// addError records a diagnostic error spanning the current token.
func (l *Lexer) addError(code string, format string, args ...interface{}) {
	l.diags = append(l.diags, diag.Errorf(code, l.makeSpan(), format, args...))
}

// ---- token reading ----

func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {
	case ' ', '\t', '\r', '\n':
		// whitespace
	case '(':
		l.addToken(token.LPAREN, nil)
	case ')':
		l.addToken(token.RPAREN, nil)
	case '{':
		l.addToken(token.LBRACE, nil)
	case '}':
		l.addToken(token.RBRACE, nil)
	case ',':
		l.addToken(token.COMMA, nil)
	case '.':
		l.addToken(token.DOT, nil)
	case '-':
		l.addToken(token.MINUS, nil)
	case '+':
		l.addToken(token.PLUS, nil)
	case ';':
		l.addToken(token.SEMICOLON, nil)
	case '*':
		l.addToken(token.STAR, nil)
	case '?':
		l.addToken(token.QUESTION, nil)
	case ':':
		l.addToken(token.COLON, nil)
	case '!':
		l.addToken(l.pick('=', token.NEQ, token.BANG), nil)
	case '=':
		l.addToken(l.pick('=', token.EQ, token.ASSIGN), nil)
	case '<':
		l.addToken(l.pick('=', token.LTE, token.LT), nil)
	case '>':
		l.addToken(l.pick('=', token.GTE, token.GT), nil)
	case '/':
		switch {
		case l.match('/'):
			l.skipLineComment()
		case l.match('*'):
			l.skipBlockComment()
		default:
			l.addToken(token.SLASH, nil)
		}
	case '"':
		l.readString()
	default:
		switch {
		case isDigit(ch):
			l.readNumber()
		case isIdentStart(ch):
			l.readIdentifier()
		default:
			l.addError(diag.CodeUnexpectedChar, "unexpected character: %s", quoteChar(ch))
		}
	}
}

// pick returns two if the next character is next (consuming it), else one.
func (l *Lexer) pick(next byte, two, one token.Kind) token.Kind {
	if l.match(next) {
		return two
	}
	return one
}

// skipLineComment skips from // to end of line.
func (l *Lexer) skipLineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment skips a /* */ comment. Comments nest.
func (l *Lexer) skipBlockComment() {
	depth := 1
	for !l.isAtEnd() {
		switch {
		case l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
			if depth == 0 {
				return
			}
		default:
			l.advance()
		}
	}
	l.addError(diag.CodeUnterminatedComment, "unterminated block comment")
}

// readString reads a double-quoted string literal. Strings may span lines.
func (l *Lexer) readString() {
	for !l.isAtEnd() && l.peek() != '"' {
		l.advance()
	}

	if l.isAtEnd() {
		l.addError(diag.CodeUnterminatedString, "unterminated string literal")
		return
	}

	l.advance() // closing "
	l.addToken(token.STRING, l.source[l.start+1:l.current-1])
}

// readNumber reads a number literal. A trailing '.' is not part of the number.
func (l *Lexer) readNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // skip '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	// out-of-range literals come back as ±Inf with a range error
	value, _ := strconv.ParseFloat(l.source[l.start:l.current], 64)
	l.addToken(token.NUMBER, value)
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	l.addToken(token.LookupIdent(l.source[l.start:l.current]), nil)
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func quoteChar(ch byte) string {
	if ch < 0x20 || ch >= 0x7f {
		return fmt.Sprintf("0x%02x", ch)
	}
	return fmt.Sprintf("'%c'", ch)
}
