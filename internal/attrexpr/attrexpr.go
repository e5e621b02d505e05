// Package attrexpr evaluates boolean expressions over file attribute sets.
//
// An expression is a comma-separated list of terms, any of which may
// match (OR). Each term is a list of '+'-joined factors, all of which
// must match (AND). A factor is an attribute name, optionally negated
// with '!', e.g. "hidden+!system,archive".
package attrexpr

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/treefind/treefind/fs"
)

type factor struct {
	flag   fs.AttributeSet
	negate bool
}

// Expression is a compiled attribute filter.
type Expression struct {
	source string
	terms  [][]factor
}

// Parse compiles the provided expression text.
func Parse(s string) (*Expression, error) {
	e := &Expression{source: s}

	for _, termText := range strings.Split(s, ",") {
		var term []factor

		for _, factorText := range strings.Split(termText, "+") {
			factorText = strings.TrimSpace(factorText)

			negate := false
			if strings.HasPrefix(factorText, "!") {
				negate = true
				factorText = strings.TrimSpace(factorText[1:])
			}

			if factorText == "" {
				return nil, errors.Errorf("invalid attribute expression %q: empty attribute name", s)
			}

			flag, err := fs.ParseAttribute(factorText)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid attribute expression %q", s)
			}

			term = append(term, factor{flag, negate})
		}

		e.terms = append(e.terms, term)
	}

	return e, nil
}

// FromFlags builds an expression requiring all provided flags to be set
// and all negated flags to be clear. Returns nil when both sets are empty.
func FromFlags(set, clear fs.AttributeSet) *Expression {
	var term []factor

	for _, an := range []fs.AttributeSet{
		fs.AttributeReadOnly, fs.AttributeHidden, fs.AttributeSystem,
		fs.AttributeDirectory, fs.AttributeArchive, fs.AttributeReparsePoint,
	} {
		if set.Has(an) {
			term = append(term, factor{an, false})
		}

		if clear.Has(an) {
			term = append(term, factor{an, true})
		}
	}

	if len(term) == 0 {
		return nil
	}

	return &Expression{terms: [][]factor{term}}
}

// String returns the source text of a parsed expression.
func (e *Expression) String() string {
	return e.source
}

// Evaluate determines whether the provided attribute set satisfies the
// expression.
func (e *Expression) Evaluate(set fs.AttributeSet) bool {
	for _, term := range e.terms {
		if evalTerm(term, set) {
			return true
		}
	}

	return false
}

func evalTerm(term []factor, set fs.AttributeSet) bool {
	for _, f := range term {
		if set.Has(f.flag) == f.negate {
			return false
		}
	}

	return true
}

// References determines whether the expression mentions the provided
// flag anywhere, negated or not.
func (e *Expression) References(flag fs.AttributeSet) bool {
	for _, term := range e.terms {
		for _, f := range term {
			if f.flag == flag {
				return true
			}
		}
	}

	return false
}
