// Package wcmatch implements wildcard matching of file names.
//
// Two dialects are supported. The default (extended) dialect understands
// '*', '?', escapes and bracket sequences, including ranges ("[a-z]"),
// negation ("[!abc]") and POSIX character classes ("[[:alpha:]]"). The
// simple dialect treats only '*' and '?' as special.
package wcmatch

import (
	"unicode"

	"github.com/pkg/errors"
)

type options struct {
	ignoreCase bool
	simple     bool
}

// Option modifies matcher behavior.
type Option func(*options)

// IgnoreCase returns an option that makes the matcher case-insensitive.
func IgnoreCase(enable bool) Option {
	return func(o *options) { o.ignoreCase = enable }
}

// Simple returns an option restricting the pattern dialect to '*' and '?'.
func Simple(enable bool) Option {
	return func(o *options) { o.simple = enable }
}

// WildcardMatcher matches file names against a compiled wildcard pattern.
type WildcardMatcher struct {
	pattern    string
	tokens     []token
	ignoreCase bool
}

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenAnyChar
	tokenStar
	tokenSequence
)

type token struct {
	kind tokenKind
	ch   rune
	seq  *sequence
}

type sequence struct {
	negated bool
	items   []seqItem
}

// seqItem is either a single rune (lo==hi), an inclusive range, or a
// named character class.
type seqItem struct {
	lo, hi rune
	class  func(rune) bool
}

// NewWildcardMatcher compiles the provided pattern. A malformed pattern
// (unterminated sequence, trailing escape, unknown character class)
// results in an error and a nil matcher.
func NewWildcardMatcher(pattern string, opts ...Option) (*WildcardMatcher, error) {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	var tokens []token

	var err error
	if o.simple {
		tokens = compileSimple(pattern)
	} else {
		tokens, err = compileExtended(pattern)
		if err != nil {
			return nil, err
		}
	}

	return &WildcardMatcher{pattern, tokens, o.ignoreCase}, nil
}

// Pattern returns the original pattern the matcher was compiled from.
func (m *WildcardMatcher) Pattern() string {
	return m.pattern
}

// Match determines whether the provided name matches the pattern.
func (m *WildcardMatcher) Match(name string) bool {
	return matchTokens(m.tokens, []rune(name), m.ignoreCase)
}

func compileSimple(pattern string) []token {
	var tokens []token

	for _, r := range pattern {
		switch r {
		case '*':
			tokens = appendStar(tokens)
		case '?':
			tokens = append(tokens, token{kind: tokenAnyChar})
		default:
			tokens = append(tokens, token{kind: tokenLiteral, ch: r})
		}
	}

	return tokens
}

func compileExtended(pattern string) ([]token, error) {
	var tokens []token

	rs := []rune(pattern)

	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '*':
			tokens = appendStar(tokens)

		case '?':
			tokens = append(tokens, token{kind: tokenAnyChar})

		case '\\':
			i++
			if i >= len(rs) {
				return nil, errors.Errorf("invalid pattern %q: trailing escape character", pattern)
			}

			tokens = append(tokens, token{kind: tokenLiteral, ch: rs[i]})

		case '[':
			seq, next, err := compileSequence(pattern, rs, i+1)
			if err != nil {
				return nil, err
			}

			tokens = append(tokens, token{kind: tokenSequence, seq: seq})
			i = next

		default:
			tokens = append(tokens, token{kind: tokenLiteral, ch: rs[i]})
		}
	}

	return tokens, nil
}

// appendStar collapses runs of consecutive stars into one.
func appendStar(tokens []token) []token {
	if n := len(tokens); n > 0 && tokens[n-1].kind == tokenStar {
		return tokens
	}

	return append(tokens, token{kind: tokenStar})
}

// compileSequence parses a bracket sequence starting right after '[' at
// position i and returns the index of the closing bracket.
func compileSequence(pattern string, rs []rune, i int) (*sequence, int, error) {
	seq := &sequence{}

	if i < len(rs) && rs[i] == '!' {
		seq.negated = true
		i++
	}

	first := true

	for i < len(rs) {
		if rs[i] == ']' && !first {
			return seq, i, nil
		}

		first = false

		if cls, next, ok, err := maybeCompileClass(pattern, rs, i); err != nil {
			return nil, 0, err
		} else if ok {
			seq.items = append(seq.items, seqItem{class: cls})
			i = next

			continue
		}

		lo, next, err := sequenceRune(pattern, rs, i)
		if err != nil {
			return nil, 0, err
		}

		i = next

		// a dash forms a range unless it is the last item
		if i+1 < len(rs) && rs[i] == '-' && rs[i+1] != ']' {
			hi, next2, err := sequenceRune(pattern, rs, i+1)
			if err != nil {
				return nil, 0, err
			}

			seq.items = append(seq.items, seqItem{lo: lo, hi: hi})
			i = next2

			continue
		}

		seq.items = append(seq.items, seqItem{lo: lo, hi: lo})
	}

	return nil, 0, errors.Errorf("invalid pattern %q: unterminated sequence", pattern)
}

func sequenceRune(pattern string, rs []rune, i int) (rune, int, error) {
	if rs[i] == '\\' {
		if i+1 >= len(rs) {
			return 0, 0, errors.Errorf("invalid pattern %q: trailing escape character", pattern)
		}

		return rs[i+1], i + 2, nil
	}

	return rs[i], i + 1, nil
}

// maybeCompileClass recognizes "[:name:]" at position i inside a
// sequence. When the ":]" terminator is absent the leading bracket is
// left to be consumed as a literal.
func maybeCompileClass(pattern string, rs []rune, i int) (func(rune) bool, int, bool, error) {
	if rs[i] != '[' || i+1 >= len(rs) || rs[i+1] != ':' {
		return nil, 0, false, nil
	}

	for j := i + 2; j+1 < len(rs); j++ {
		if rs[j] == ':' && rs[j+1] == ']' {
			name := string(rs[i+2 : j])

			cls, ok := characterClasses[name]
			if !ok {
				return nil, 0, false, errors.Errorf("invalid pattern %q: unknown character class %q", pattern, name)
			}

			return cls, j + 2, true, nil
		}
	}

	return nil, 0, false, nil
}

var characterClasses = map[string]func(rune) bool{
	"alnum": func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	"alpha": unicode.IsLetter,
	"ascii": func(r rune) bool { return r < 128 },
	"blank": func(r rune) bool { return r == ' ' || r == '\t' },
	"cntrl": unicode.IsControl,
	"digit": unicode.IsDigit,
	"graph": func(r rune) bool { return unicode.IsPrint(r) && r != ' ' },
	"lower": unicode.IsLower,
	"print": unicode.IsPrint,
	"punct": func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) },
	"space": unicode.IsSpace,
	"upper": unicode.IsUpper,
	"xdigit": func(r rune) bool {
		return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
	},
}

func matchTokens(tokens []token, name []rune, ci bool) bool {
	for len(tokens) > 0 {
		t := tokens[0]

		switch t.kind {
		case tokenStar:
			rest := tokens[1:]
			if len(rest) == 0 {
				return true
			}

			for i := 0; i <= len(name); i++ {
				if matchTokens(rest, name[i:], ci) {
					return true
				}
			}

			return false

		case tokenAnyChar:
			if len(name) == 0 {
				return false
			}

		case tokenLiteral:
			if len(name) == 0 || !runesEqual(t.ch, name[0], ci) {
				return false
			}

		case tokenSequence:
			if len(name) == 0 || !t.seq.match(name[0], ci) {
				return false
			}
		}

		tokens = tokens[1:]
		name = name[1:]
	}

	return len(name) == 0
}

func runesEqual(a, b rune, ci bool) bool {
	if a == b {
		return true
	}

	return ci && unicode.ToLower(a) == unicode.ToLower(b)
}

func (s *sequence) match(r rune, ci bool) bool {
	in := false

	for _, it := range s.items {
		if it.matches(r, ci) {
			in = true
			break
		}
	}

	return in != s.negated
}

func (it seqItem) matches(r rune, ci bool) bool {
	if it.matchesExact(r) {
		return true
	}

	return ci && (it.matchesExact(unicode.ToLower(r)) || it.matchesExact(unicode.ToUpper(r)))
}

func (it seqItem) matchesExact(r rune) bool {
	if it.class != nil {
		return it.class(r)
	}

	return r >= it.lo && r <= it.hi
}
