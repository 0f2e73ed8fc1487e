package lexer

import "github.com/faber-lang/faber/pkg/token"

// readOperator scans one symbolic operator or punctuation token starting at
// l.ch, always preferring the longest match (e.g. "===" over "==" over "=").
// Returns ok=false if l.ch does not start any known operator.
func (l *Lexer) readOperator(pos token.Position) (token.Token, bool) {
	ch := l.ch

	two := func(next rune, kind token.Kind, text string) (token.Token, bool) {
		if l.peekChar() == next {
			l.readChar()
			l.readChar()
			return token.New(kind, text, pos), true
		}
		return token.Token{}, false
	}

	switch ch {
	case '+':
		if t, ok := two('=', token.PLUS_EQ, "+="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.PLUS, "+", pos), true

	case '-':
		if t, ok := two('=', token.MINUS_EQ, "-="); ok {
			return t, true
		}
		if t, ok := two('>', token.ARROW_THIN, "->"); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.MINUS, "-", pos), true

	case '*':
		if t, ok := two('=', token.STAR_EQ, "*="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.STAR, "*", pos), true

	case '/':
		if t, ok := two('=', token.SLASH_EQ, "/="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.SLASH, "/", pos), true

	case '%':
		if t, ok := two('=', token.PERCENT_EQ, "%="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.PERCENT, "%", pos), true

	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return token.New(token.EQ_STRICT, "===", pos), true
			}
			l.readChar()
			return token.New(token.EQ, "==", pos), true
		}
		if t, ok := two('>', token.ARROW_FAT, "=>"); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.ASSIGN, "=", pos), true

	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return token.New(token.NOT_STRICT, "!==", pos), true
			}
			l.readChar()
			return token.New(token.NOT_EQ, "!=", pos), true
		}
		if t, ok := two('.', token.BANG_DOT, "!."); ok {
			return t, true
		}
		if t, ok := two('[', token.BANG_LBRACK, "!["); ok {
			return t, true
		}
		if t, ok := two('(', token.BANG_LPAREN, "!("); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.BANG, "!", pos), true

	case '<':
		if t, ok := two('=', token.LT_EQ, "<="); ok {
			return t, true
		}
		if t, ok := two('<', token.SHL, "<<"); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.LT, "<", pos), true

	case '>':
		if t, ok := two('=', token.GT_EQ, ">="); ok {
			return t, true
		}
		if t, ok := two('>', token.SHR, ">>"); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.GT, ">", pos), true

	case '&':
		if t, ok := two('&', token.AND_AND, "&&"); ok {
			return t, true
		}
		if t, ok := two('=', token.AMP_EQ, "&="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.AMP, "&", pos), true

	case '|':
		if t, ok := two('|', token.OR_OR, "||"); ok {
			return t, true
		}
		if t, ok := two('=', token.PIPE_EQ, "|="); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.PIPE, "|", pos), true

	case '^':
		l.readChar()
		return token.New(token.CARET, "^", pos), true

	case '~':
		l.readChar()
		return token.New(token.TILDE, "~", pos), true

	case '?':
		// Chain-accessor disambiguation: only "?.", "?[" and "?(" bind as
		// optional-chain operators; any other follower leaves '?' as the
		// ternary operator, per spec.md's ternary-vs-optional-chain rule.
		if t, ok := two('.', token.OPT_DOT, "?."); ok {
			return t, true
		}
		if t, ok := two('[', token.OPT_LBRACK, "?["); ok {
			return t, true
		}
		if t, ok := two('(', token.OPT_LPAREN, "?("); ok {
			return t, true
		}
		l.readChar()
		return token.New(token.QUESTION, "?", pos), true

	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return token.New(token.DOTDOT, "..", pos), true
		}
		l.readChar()
		return token.New(token.DOT, ".", pos), true

	case ',':
		l.readChar()
		return token.New(token.COMMA, ",", pos), true
	case ';':
		l.readChar()
		return token.New(token.SEMI, ";", pos), true
	case ':':
		l.readChar()
		return token.New(token.COLON, ":", pos), true
	case '(':
		l.readChar()
		return token.New(token.LPAREN, "(", pos), true
	case ')':
		l.readChar()
		return token.New(token.RPAREN, ")", pos), true
	case '[':
		l.readChar()
		return token.New(token.LBRACK, "[", pos), true
	case ']':
		l.readChar()
		return token.New(token.RBRACK, "]", pos), true
	case '{':
		l.readChar()
		return token.New(token.LBRACE, "{", pos), true
	case '}':
		l.readChar()
		return token.New(token.RBRACE, "}", pos), true
	}

	return token.Token{}, false
}
