package tokenjson_test

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/faber-lang/faber/internal/tokenjson"
	"github.com/faber-lang/faber/pkg/token"
)

func TestEncode_Identifier(t *testing.T) {
	tok := token.New(token.IDENT, "numerus_x", token.Position{Line: 3, Column: 5, Offset: 40})
	doc, err := tokenjson.Encode(tok)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := gjson.Get(doc, "value").String(); got != "numerus_x" {
		t.Fatalf("value = %q, want numerus_x", got)
	}
	if got := gjson.Get(doc, "position.line").Int(); got != 3 {
		t.Fatalf("position.line = %d, want 3", got)
	}
	if gjson.Get(doc, "keyword").Exists() {
		t.Fatalf("keyword should be absent for a non-keyword token")
	}
}

func TestEncode_Keyword(t *testing.T) {
	tok := token.New(token.KEYWORD, "varia", token.Position{Line: 1, Column: 1, Offset: 0})
	tok.Keyword = "varia"
	doc, err := tokenjson.Encode(tok)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := gjson.Get(doc, "keyword").String(); got != "varia" {
		t.Fatalf("keyword = %q, want varia", got)
	}
}

func TestEncodeAll(t *testing.T) {
	tokens := []token.Token{
		token.New(token.KEYWORD, "varia", token.Position{Line: 1, Column: 1}),
		token.New(token.IDENT, "x", token.Position{Line: 1, Column: 7}),
	}
	doc, err := tokenjson.EncodeAll(tokens)
	if err != nil {
		t.Fatalf("EncodeAll: %v", err)
	}
	arr := gjson.Parse(doc).Array()
	if len(arr) != 2 {
		t.Fatalf("len(array) = %d, want 2", len(arr))
	}
	if got := arr[1].Get("value").String(); got != "x" {
		t.Fatalf("arr[1].value = %q, want x", got)
	}
}
