package lexer

import (
	"testing"

	"github.com/faber-lang/faber/pkg/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `varia x = 5;
	x = x + 10;`

	tests := []struct {
		text string
		kind token.Kind
	}{
		{"varia", token.KEYWORD},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"5", token.NUMBER},
		{";", token.SEMI},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMI},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (text=%q)", i, tt.kind, tok.Kind, tok.Text)
		}
		if tok.Text != tt.text {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.text, tok.Text)
		}
	}
}

func TestPostIsAlwaysIdentifier(t *testing.T) {
	for _, src := range []string{"post", "varia post = 1;", "x.post", "post.nomen"} {
		toks, errs := TokenizeAll(src)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors for %q: %v", src, errs)
		}
		found := false
		for _, tok := range toks {
			if tok.Text == "post" {
				found = true
				if tok.Kind != token.IDENT {
					t.Fatalf("%q: expected post to tokenize as IDENT, got %s", src, tok.Kind)
				}
			}
		}
		if !found {
			t.Fatalf("%q: no 'post' token produced", src)
		}
	}
}

func TestOptionalChainVsTernary(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"a?.b", token.OPT_DOT},
		{"a?[0]", token.OPT_LBRACK},
		{"a?(b)", token.OPT_LPAREN},
		{"a ? b secus c", token.QUESTION},
	}
	for _, tt := range tests {
		l := New(tt.src)
		l.NextToken() // skip leading identifier
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("%q: expected %s, got %s", tt.src, tt.kind, tok.Kind)
		}
	}
}

func TestTwoCharOperatorsPreferredOverPrefix(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
		text string
	}{
		{"===", token.EQ_STRICT, "==="},
		{"==", token.EQ, "=="},
		{"=", token.ASSIGN, "="},
		{"!==", token.NOT_STRICT, "!=="},
		{"!=", token.NOT_EQ, "!="},
	}
	for _, tt := range tests {
		tok := New(tt.src).NextToken()
		if tok.Kind != tt.kind || tok.Text != tt.text {
			t.Fatalf("%q: expected %s(%q), got %s(%q)", tt.src, tt.kind, tt.text, tok.Kind, tok.Text)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		src     string
		kind    token.Kind
		isFloat bool
	}{
		{"42", token.NUMBER, false},
		{"3.14", token.NUMBER, true},
		{"0x1F", token.NUMBER, false},
		{"42n", token.BIGINT, false},
		{"1e10", token.NUMBER, true},
	}
	for _, tt := range tests {
		tok := New(tt.src).NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("%q: expected kind %s, got %s", tt.src, tt.kind, tok.Kind)
		}
		if tok.Kind == token.NUMBER && tok.IsFloat != tt.isFloat {
			t.Fatalf("%q: expected isFloat=%v, got %v", tt.src, tt.isFloat, tok.IsFloat)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tok := New(`"line1\nline2\t\"quoted\""`).NextToken()
	want := "line1\nline2\t\"quoted\""
	if tok.Text != want {
		t.Fatalf("expected %q, got %q", want, tok.Text)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	_, errs := TokenizeAll(`"unterminated`)
	if len(errs) != 1 || errs[0].Code != CodeUnterminatedString {
		t.Fatalf("expected a single %s error, got %v", CodeUnterminatedString, errs)
	}
}

func TestTemplateLiteralCapturedVerbatim(t *testing.T) {
	tok := New("`hello ${nomen}!`").NextToken()
	if tok.Kind != token.TEMPLATE {
		t.Fatalf("expected TEMPLATE, got %s", tok.Kind)
	}
	want := "`hello ${nomen}!`"
	if tok.Text != want {
		t.Fatalf("expected %q, got %q", want, tok.Text)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("varia\nx = 1;")
	l.NextToken()        // varia
	tok := l.NextToken() // x
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %s", tok.Pos)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("varia x = 1;")
	first := l.Peek(0)
	second := l.NextToken()
	if first.Text != second.Text {
		t.Fatalf("Peek(0) should match the next NextToken() result: %q vs %q", first.Text, second.Text)
	}
}

func TestCommentsSkippedByDefault(t *testing.T) {
	toks, _ := TokenizeAll("varia x = 1; // trailing comment\n/* block */ x;")
	for _, tok := range toks {
		if tok.Kind == token.COMMENT {
			t.Fatalf("did not expect COMMENT tokens without WithPreserveComments")
		}
	}
}

func TestCommentsPreservedWhenRequested(t *testing.T) {
	toks, _ := TokenizeAll("// hi\nx;", WithPreserveComments(true))
	if len(toks) == 0 || toks[0].Kind != token.COMMENT {
		t.Fatalf("expected first token to be COMMENT, got %v", toks[0])
	}
}
