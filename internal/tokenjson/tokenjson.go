// Package tokenjson renders tokens as the JSON shape spec.md §6 defines for
// external tooling: { kind, value, keyword?, position: { line, column,
// offset } }.
package tokenjson

import (
	"strconv"

	"github.com/tidwall/sjson"

	"github.com/faber-lang/faber/pkg/token"
)

// Encode renders a single token as a JSON object.
func Encode(t token.Token) (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "kind", t.Kind.String())
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "value", t.Text)
	if err != nil {
		return "", err
	}
	if t.Kind == token.KEYWORD {
		doc, err = sjson.Set(doc, "keyword", t.Keyword)
		if err != nil {
			return "", err
		}
	}
	doc, err = sjson.Set(doc, "position.line", t.Pos.Line)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "position.column", t.Pos.Column)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "position.offset", t.Pos.Offset)
	if err != nil {
		return "", err
	}
	return doc, nil
}

// EncodeAll renders a token stream as a JSON array, the shape the
// "tokenize" tooling surface emits.
func EncodeAll(tokens []token.Token) (string, error) {
	doc := "[]"
	for i, t := range tokens {
		obj, err := Encode(t)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, strconv.Itoa(i), obj)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
