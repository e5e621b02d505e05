package wcmatch

import (
	"testing"
)

type wcCase struct {
	// The pattern to match the name against.
	pattern string
	// The name to match.
	name string
	// Expected result for a case-sensitive match.
	cs bool
	// Expected result for a case-insensitive match.
	ci bool
}

func TestMatch(t *testing.T) {
	cases := []wcCase{
		// Basic
		{"", "", true, true},
		{"*", "", true, true},
		{"**", "", true, true},
		{"b", "a", false, false},
		{"*.*", "foo.txt", true, true},
		{"foo\\.txt", "foo.txt", true, true},
		{"b", "", false, false},
		{"", "a", false, false},

		// Sequences
		{"ab[cd]", "abc", true, true},
		{"ab[!de]", "abc", true, true},
		{"[\\\\]", "\\", true, true},
		{"[!\\\\]", "a", true, true},
		{"[!\\\\]", "\\", false, false},
		{"[-abc]", "-", true, true},
		{"[abc-]", "-", true, true},
		{"[[]", "[", true, true},
		{"[a-z]", "q", true, true},
		{"[a-\\z]", "q", true, true},
		{"[a-d]", "e", false, false},
		{"[a\\-c]", "-", true, true},
		{"[a\\-c]", "b", false, false},
		{"[[:]", ":", true, true},
		{"[[:ab]", ":", true, true},
		{"[[:ab]", "[", true, true},
		{"[[:ab]", "b", true, true},
		{"[[:ab]", "c", false, false},
		{"[![:digit:]ab]", "a", false, false},
		{"[![:digit:]ab]", "3", false, false},
		{"[![:digit:]ab]", "c", true, true},

		// Case, general
		{"abc", "abc", true, true},
		{"abc", "AbC", false, true},
		{"AbC", "abc", false, true},
		{"AbC", "AbC", true, true},

		// Case, sequence
		{"[A-F]", "C", true, true},
		{"[A-F]", "c", false, true},
		{"[a-f]", "c", true, true},
		{"[a-f]", "C", false, true},

		// Basic wildcard
		{"ab*", "abcd", true, true},
		{"ab*cd", "abcd", true, true},
		{"ab*cd", "abxxxcd", true, true},
		{"ab***cd", "abcd", true, true},
		{"ab***cd", "abxxxcd", true, true},
		{"?*?", "abc", true, true},
		{"???*", "abc", true, true},
		{"*???", "abc", true, true},
		{"???", "abc", true, true},
		{"*", "abc", true, true},
		{"??", "a", false, false},
		{"*.txt", "a.txt", true, true},
		{"*.txt", "a.txt.bak", false, false},
		{"a*b*c", "aXbYc", true, true},
		{"a*b*c", "aXcYb", false, false},
	}

	testHelper(t, cases)
}

func TestMatchSimple(t *testing.T) {
	cases := []wcCase{
		{"*", "anything", true, true},
		{"*.txt", "foo.txt", true, true},
		{"?oo", "foo", true, true},
		{"f?o", "fxo", true, true},

		// sequence and escape characters are literals in the simple dialect
		{"[ab]", "[ab]", true, true},
		{"[ab]", "a", false, false},
		{"\\a", "\\a", true, true},
		{"a[", "a[", true, true},

		{"ABC", "abc", false, true},
	}

	for i, tc := range cases {
		matcherCI, err := NewWildcardMatcher(tc.pattern, Simple(true), IgnoreCase(true))
		if err != nil {
			t.Errorf("(%v) unexpected error returned for pattern %#v: %v", i, tc.pattern, err)
			continue
		}

		if actual := matcherCI.Match(tc.name); actual != tc.ci {
			t.Errorf("(%v) error matching pattern %#v with name %#v (case-insensitive): got %v want %v", i, tc.pattern, tc.name, actual, tc.ci)
		}

		matcherCS, err := NewWildcardMatcher(tc.pattern, Simple(true))
		if err != nil {
			t.Errorf("(%v) unexpected error returned for pattern %#v: %v", i, tc.pattern, err)
			continue
		}

		if actual := matcherCS.Match(tc.name); actual != tc.cs {
			t.Errorf("(%v) error matching pattern %#v with name %#v (case-sensitive): got %v want %v", i, tc.pattern, tc.name, actual, tc.cs)
		}
	}
}

func TestErrorCases(t *testing.T) {
	cases := []struct {
		pattern string
	}{
		{"[a"},
		{"[a-"},
		{"\\"},
		{"[\\"},
		{"[a-\\"},
		{"[[:alnum"},
		{"[[:alnum:]"},
		{"[[:foobar:]]"},
	}

	for i, tc := range cases {
		m, err := NewWildcardMatcher(tc.pattern, IgnoreCase(true))
		if err == nil {
			t.Errorf("(%v) Expected error for pattern %#v but did not get one", i, tc.pattern)
		} else if m != nil {
			t.Errorf("(%v) Expected NewWildcardMatcher to return nil on error, pattern = %#v", i, tc.pattern)
		}
	}
}

func TestCharacterClasses(t *testing.T) {
	cases := []wcCase{
		{"[[:alnum:]]", "c", true, true},
		{"[[:alnum:]]", "3", true, true},
		{"[[:alnum:]]", "Q", true, true},
		{"[[:alnum:]]", "Б", true, true},
		{"[[:alnum:]]", ".", false, false},
		{"[[:alnum:]]", " ", false, false},
		{"[[:alnum:]]", "\n", false, false},

		{"[[:alpha:]]", "c", true, true},
		{"[[:alpha:]]", "3", false, false},
		{"[[:alpha:]]", "Q", true, true},
		{"[[:alpha:]]", "Б", true, true},
		{"[[:alpha:]]", ".", false, false},

		{"[[:ascii:]]", "c", true, true},
		{"[[:ascii:]]", "Б", false, false},
		{"[[:ascii:]]", "\n", true, true},

		{"[[:blank:]]", " ", true, true},
		{"[[:blank:]]", "\t", true, true},
		{"[[:blank:]]", "\n", false, false},
		{"[[:blank:]]", "c", false, false},

		{"[[:cntrl:]]", "\t", true, true},
		{"[[:cntrl:]]", "\n", true, true},
		{"[[:cntrl:]]", "c", false, false},
		{"[[:cntrl:]]", " ", false, false},

		{"[[:digit:]]", "3", true, true},
		{"[[:digit:]]", "c", false, false},
		{"[[:digit:]]", "۳", true, true}, // a farsi digit
		{"[[:digit:]]", "\n", false, false},

		{"[[:graph:]]", "c", true, true},
		{"[[:graph:]]", ".", true, true},
		{"[[:graph:]]", " ", false, false},
		{"[[:graph:]]", "\n", false, false},

		{"[[:lower:]]", "c", true, true},
		{"[[:lower:]]", "C", false, true},
		{"[[:lower:]]", "3", false, false},
		{"[[:lower:]]", "Б", false, true},
		{"[[:lower:]]", "ε", true, true},

		{"[[:print:]]", "c", true, true},
		{"[[:print:]]", " ", true, true},
		{"[[:print:]]", "\n", false, false},

		{"[[:punct:]]", ".", true, true},
		{"[[:punct:]]", "!", true, true},
		{"[[:punct:]]", "$", true, true},
		{"[[:punct:]]", "c", false, false},
		{"[[:punct:]]", " ", false, false},

		{"[[:space:]]", " ", true, true},
		{"[[:space:]]", "\t", true, true},
		{"[[:space:]]", "\n", true, true},
		{"[[:space:]]", "c", false, false},

		{"[[:upper:]]", "C", true, true},
		{"[[:upper:]]", "c", false, true},
		{"[[:upper:]]", "Б", true, true},
		{"[[:upper:]]", "ε", false, true},
		{"[[:upper:]]", "3", false, false},

		{"[[:xdigit:]]", "a", true, true},
		{"[[:xdigit:]]", "F", true, true},
		{"[[:xdigit:]]", "3", true, true},
		{"[[:xdigit:]]", "G", false, false},
		{"[[:xdigit:]]", "Б", false, false},
	}

	testHelper(t, cases)
}

func testHelper(t *testing.T, cases []wcCase) {
	t.Helper()

	for i, tc := range cases {
		matcherCI, err := NewWildcardMatcher(tc.pattern, IgnoreCase(true))
		if err != nil {
			t.Errorf("(%v) unexpected error returned for pattern %#v: %v", i, tc.pattern, err)
		} else if actual := matcherCI.Match(tc.name); actual != tc.ci {
			t.Errorf("(%v) error matching pattern %#v with name %#v (case-insensitive): got %v want %v", i, tc.pattern, tc.name, actual, tc.ci)
		}

		matcherCS, err := NewWildcardMatcher(tc.pattern)
		if err != nil {
			t.Errorf("(%v) unexpected error returned for pattern %#v: %v", i, tc.pattern, err)
		} else if actual := matcherCS.Match(tc.name); actual != tc.cs {
			t.Errorf("(%v) error matching pattern %#v with name %#v (case-sensitive): got %v want %v", i, tc.pattern, tc.name, actual, tc.cs)
		}
	}
}
