package parser

import "github.com/faber-lang/faber/pkg/token"

// Precedence levels, lowest to highest. Bitwise operators bind TIGHTER than
// comparison/equality here — the opposite of C's table — per the REDESIGN
// FLAG preserved from spec.md §9 (see DESIGN.md Open Question decisions).
const (
	_ int = iota
	LOWEST
	ASSIGN     // = += -= *= /= &= |= %=
	TERNARY    // ? ... secus ... (the sic spelling is not parsed)
	NULLISH    // vel / ??
	LOGICAL_OR // aut / ||
	LOGICAL_AND
	EQUALITY // == != === !== est / non est
	COMPARISON
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	SHIFT
	RANGE // ante / usque / per
	SUM
	PRODUCT
	UNARY
	CALL_MEMBER // call, index, member access — highest
)

var tokenPrecedence = map[token.Kind]int{
	token.ASSIGN:     ASSIGN,
	token.PLUS_EQ:    ASSIGN,
	token.MINUS_EQ:   ASSIGN,
	token.STAR_EQ:    ASSIGN,
	token.SLASH_EQ:   ASSIGN,
	token.AMP_EQ:     ASSIGN,
	token.PIPE_EQ:    ASSIGN,
	token.PERCENT_EQ: ASSIGN,
	token.QUESTION:   TERNARY,
	token.AND_AND:    LOGICAL_AND,
	token.OR_OR:      LOGICAL_OR,
	token.EQ:         EQUALITY,
	token.NOT_EQ:     EQUALITY,
	token.EQ_STRICT:  EQUALITY,
	token.NOT_STRICT: EQUALITY,
	token.LT:         COMPARISON,
	token.GT:         COMPARISON,
	token.LT_EQ:      COMPARISON,
	token.GT_EQ:      COMPARISON,
	token.PIPE:       BITWISE_OR,
	token.CARET:      BITWISE_XOR,
	token.AMP:        BITWISE_AND,
	token.SHL:        SHIFT,
	token.SHR:        SHIFT,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.STAR:       PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.LPAREN:     CALL_MEMBER,
	token.OPT_LPAREN: CALL_MEMBER,
	token.BANG_LPAREN: CALL_MEMBER,
	token.LBRACK:     CALL_MEMBER,
	token.OPT_LBRACK: CALL_MEMBER,
	token.BANG_LBRACK: CALL_MEMBER,
	token.DOT:        CALL_MEMBER,
	token.OPT_DOT:    CALL_MEMBER,
	token.BANG_DOT:   CALL_MEMBER,
}

// keywordPrecedence covers the Latin word-operators, which the lexer yields
// as KEYWORD tokens rather than symbolic operator kinds.
var keywordPrecedence = map[string]int{
	"vel":   NULLISH,
	"aut":   LOGICAL_OR,
	"et":    LOGICAL_AND,
	"est":   EQUALITY,
	"non":   EQUALITY, // only valid as the infix "non est" (negated type test)
	"ante":  RANGE,
	"usque": RANGE,
	"per":   RANGE,
	"qua":   CALL_MEMBER,
}

func (p *Parser) peekPrecedence() int {
	tok := p.cursor.Current()
	if tok.Kind == token.KEYWORD {
		if prec, ok := keywordPrecedence[tok.Keyword]; ok {
			return prec
		}
		return LOWEST
	}
	if prec, ok := tokenPrecedence[tok.Kind]; ok {
		return prec
	}
	return LOWEST
}
