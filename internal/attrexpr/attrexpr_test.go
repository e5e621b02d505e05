package attrexpr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treefind/treefind/fs"
	"github.com/treefind/treefind/internal/attrexpr"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		expr string
		set  fs.AttributeSet
		want bool
	}{
		{"hidden", fs.AttributeHidden, true},
		{"hidden", fs.AttributeSystem, false},
		{"Hidden", fs.AttributeHidden, true},
		{" hidden ", fs.AttributeHidden, true},
		{"hidden+system", fs.AttributeHidden | fs.AttributeSystem, true},
		{"hidden+system", fs.AttributeHidden, false},
		{"hidden+!system", fs.AttributeHidden, true},
		{"hidden+!system", fs.AttributeHidden | fs.AttributeSystem, false},
		{"hidden,archive", fs.AttributeArchive, true},
		{"hidden,archive", fs.AttributeHidden, true},
		{"hidden,archive", fs.AttributeReadOnly, false},
		{"!directory", fs.AttributeDirectory, false},
		{"!directory", 0, true},
		{"directory+hidden,readonly", fs.AttributeReadOnly | fs.AttributeSystem, true},
		{"reparsepoint", fs.AttributeReparsePoint, true},
	}

	for _, tc := range cases {
		e, err := attrexpr.Parse(tc.expr)
		require.NoError(t, err, "expr %q", tc.expr)
		require.Equal(t, tc.want, e.Evaluate(tc.set), "expr %q against %v", tc.expr, tc.set)
	}
}

func TestReferences(t *testing.T) {
	e, err := attrexpr.Parse("hidden+!system,archive")
	require.NoError(t, err)

	require.True(t, e.References(fs.AttributeHidden))
	require.True(t, e.References(fs.AttributeSystem))
	require.True(t, e.References(fs.AttributeArchive))
	require.False(t, e.References(fs.AttributeDirectory))

	// negated references still count as references
	e2, err := attrexpr.Parse("!hidden")
	require.NoError(t, err)
	require.True(t, e2.References(fs.AttributeHidden))
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"wibble",
		"hidden+",
		"+hidden",
		"hidden,",
		"!",
		"hidden+!",
	} {
		_, err := attrexpr.Parse(expr)
		require.Error(t, err, "expr %q", expr)
	}
}

func TestFromFlags(t *testing.T) {
	require.Nil(t, attrexpr.FromFlags(0, 0))

	e := attrexpr.FromFlags(fs.AttributeHidden, fs.AttributeDirectory)
	require.NotNil(t, e)

	require.True(t, e.Evaluate(fs.AttributeHidden))
	require.False(t, e.Evaluate(fs.AttributeHidden|fs.AttributeDirectory))
	require.False(t, e.Evaluate(0))

	require.True(t, e.References(fs.AttributeHidden))
	require.True(t, e.References(fs.AttributeDirectory))
	require.False(t, e.References(fs.AttributeSystem))
}
