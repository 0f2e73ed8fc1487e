package semantic

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/faber-lang/faber/pkg/ast"
)

// caseLabelCollator backs checkDuplicateCaseLabels: spec.md §4.4's string
// equality is locale-aware (two literals written with different Unicode
// normalization forms still compare equal), so an "elige" switch with two
// string case labels that collate as equal is just as unreachable as one
// repeated byte-for-byte.
var caseLabelCollator = collate.New(language.Und)

func (a *analyzer) checkDuplicateCaseLabels(s *ast.SwitchStatement) {
	var seen []*ast.StringLiteral
	for _, c := range s.Cases {
		lit, ok := c.Value.(*ast.StringLiteral)
		if !ok {
			continue
		}
		for _, prev := range seen {
			if caseLabelCollator.CompareString(prev.Value, lit.Value) == 0 {
				a.errorf(CodeDuplicateCaseLabel, "case label \""+lit.Value+"\" duplicates an earlier case under string collation", lit)
				break
			}
		}
		seen = append(seen, lit)
	}
}
