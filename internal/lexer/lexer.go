// Package lexer tokenizes faber-romanus source text into pkg/token.Tokens.
//
// Columns are counted in runes, not bytes or display cells, matching the
// teacher's Unicode handling: a multi-byte rune and an ASCII character each
// advance the column by exactly one.
package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/token"
	"golang.org/x/text/unicode/norm"
)

// Lexer is a single-pass, rune-based tokenizer with unbounded token
// lookahead via Peek.
type Lexer struct {
	input            string
	errors           []*Error
	tokenBuffer      []token.Token
	position         int
	readPosition     int
	line             int
	column           int
	ch               rune
	preserveComments bool
	tracing          bool
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithPreserveComments makes the lexer emit token.COMMENT tokens instead of
// silently discarding comment text; useful for formatters.
func WithPreserveComments(preserve bool) Option {
	return func(l *Lexer) { l.preserveComments = preserve }
}

// WithTracing records a tracing flag on the Lexer; nothing reads the flag, so
// the lexer emits no tracing output.
func WithTracing(trace bool) Option {
	return func(l *Lexer) { l.tracing = trace }
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if present.
func New(input string, opts ...Option) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns every lexical diagnostic accumulated so far.
func (l *Lexer) Errors() []*Error {
	return l.errors
}

func (l *Lexer) addError(code, msg string, pos token.Position) {
	l.errors = append(l.errors, &Error{Code: code, Message: msg, Pos: pos})
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError(CodeInvalidUTF8, "invalid UTF-8 encoding", l.currentPos())
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharN(n int) rune {
	pos := l.readPosition
	for i := 0; i < n-1 && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.position}
}

// Peek returns the token n positions ahead without consuming it; Peek(0) is
// the next token NextToken would return.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scan())
	}
	return l.tokenBuffer[n]
}

// NextToken consumes and returns the next token.
func (l *Lexer) NextToken() token.Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.scan()
}

// TokenizeAll drains the lexer, returning every token through EOF.
func TokenizeAll(input string, opts ...Option) ([]token.Token, []*Error) {
	l := New(input, opts...)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.Errors()
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.column = 0
			l.readChar()
		default:
			return
		}
	}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func normalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// scan produces the next raw token, skipping whitespace and (unless
// preserveComments is set) comments.
func (l *Lexer) scan() token.Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			pos := l.currentPos()
			text := l.readLineComment()
			if l.preserveComments {
				return token.New(token.COMMENT, text, pos)
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			pos := l.currentPos()
			text, ok := l.readBlockComment()
			if !ok {
				l.addError(CodeUnterminatedComment, "unterminated block comment", pos)
			}
			if l.preserveComments {
				return token.New(token.COMMENT, text, pos)
			}
			continue
		}
		break
	}

	pos := l.currentPos()

	if l.ch == 0 {
		return token.New(token.EOF, "", pos)
	}

	switch {
	case isLetter(l.ch):
		return l.readIdentifier(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '"':
		return l.readString(pos)
	case l.ch == '`':
		return l.readTemplate(pos)
	}

	if tok, ok := l.readOperator(pos); ok {
		return tok
	}

	ch := l.ch
	l.readChar()
	l.addError(CodeUnexpectedChar, "unexpected character "+strconv.QuoteRune(ch), pos)
	return token.New(token.ILLEGAL, string(ch), pos)
}

func (l *Lexer) readLineComment() string {
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readBlockComment() (string, bool) {
	start := l.position
	l.readChar() // skip /
	l.readChar() // skip *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return l.input[start:l.position], true
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
	return l.input[start:l.position], false
}

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	text := normalizeNFC(l.input[start:l.position])

	switch text {
	case "verum", "falsum":
		tok := token.New(token.KEYWORD, text, pos)
		tok.Keyword = text
		return tok
	}

	if kw, ok := lexicon.Lookup(text); ok {
		tok := token.New(token.KEYWORD, text, pos)
		tok.Keyword = kw.Lexeme
		return tok
	}
	return token.New(token.IDENT, text, pos)
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.position

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		text := l.input[start:l.position]
		if l.ch == 'n' {
			l.readChar()
			v, _ := strconv.ParseInt(text[2:], 16, 64)
			tok := token.New(token.BIGINT, text+"n", pos)
			tok.IntValue = v
			return tok
		}
		v, err := strconv.ParseInt(text[2:], 16, 64)
		if err != nil {
			l.addError(CodeMalformedNumber, "malformed hex literal "+text, pos)
		}
		tok := token.New(token.NUMBER, text, pos)
		tok.IntValue = v
		return tok
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		la := l.peekChar()
		if isDigit(la) || ((la == '+' || la == '-') && isDigit(l.peekCharN(2))) {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	text := l.input[start:l.position]

	if !isFloat && l.ch == 'n' {
		l.readChar()
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			l.addError(CodeMalformedNumber, "malformed bigint literal "+text+"n", pos)
		}
		tok := token.New(token.BIGINT, text+"n", pos)
		tok.IntValue = v
		return tok
	}

	tok := token.New(token.NUMBER, text, pos)
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.addError(CodeMalformedNumber, "malformed float literal "+text, pos)
		}
		tok.FltValue = v
		tok.IsFloat = true
	} else {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			l.addError(CodeMalformedNumber, "malformed integer literal "+text, pos)
		}
		tok.IntValue = v
	}
	return tok
}

func (l *Lexer) readString(pos token.Position) token.Token {
	l.readChar() // skip opening quote
	start := l.position
	var value []rune
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			esc, ok := decodeEscape(l.ch)
			if !ok {
				l.addError(CodeInvalidEscape, "invalid escape sequence \\"+string(l.ch), l.currentPos())
				value = append(value, l.ch)
			} else {
				value = append(value, esc)
			}
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		value = append(value, l.ch)
		l.readChar()
	}
	if l.ch == 0 {
		l.addError(CodeUnterminatedString, "unterminated string literal", pos)
	} else {
		l.readChar() // skip closing quote
	}
	_ = start
	tok := token.New(token.STRING, l.input[start:l.position], pos)
	tok.Text = normalizeNFC(string(value))
	return tok
}

func decodeEscape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '"':
		return '"', true
	case '`':
		return '`', true
	case '\\':
		return '\\', true
	case '$':
		return '$', true
	case '0':
		return 0, true
	default:
		return ch, false
	}
}

// readTemplate captures a backtick template verbatim, including any
// "${...}" interpolation markers, without interpreting them; the parser
// splits the captured text into literal/expression parts.
func (l *Lexer) readTemplate(pos token.Position) token.Token {
	start := l.position
	l.readChar() // skip opening backtick
	depth := 0
	for {
		if l.ch == 0 {
			l.addError(CodeUnterminatedTemplate, "unterminated template literal", pos)
			break
		}
		if l.ch == '`' && depth == 0 {
			l.readChar()
			break
		}
		if l.ch == '$' && l.peekChar() == '{' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '}' && depth > 0 {
			depth--
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
	return token.New(token.TEMPLATE, l.input[start:l.position], pos)
}
