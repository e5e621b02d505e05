package fs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treefind/treefind/fs"
)

func TestAttributeSetHas(t *testing.T) {
	a := fs.AttributeHidden | fs.AttributeDirectory

	require.True(t, a.Has(fs.AttributeHidden))
	require.True(t, a.Has(fs.AttributeDirectory))
	require.True(t, a.Has(fs.AttributeHidden|fs.AttributeDirectory))
	require.False(t, a.Has(fs.AttributeSystem))
	require.False(t, a.Has(fs.AttributeHidden|fs.AttributeSystem))
}

func TestAttributeSetString(t *testing.T) {
	require.Equal(t, "normal", fs.AttributeNormal.String())
	require.Equal(t, "hidden", fs.AttributeHidden.String())
	require.Equal(t, "hidden,directory", (fs.AttributeHidden | fs.AttributeDirectory).String())
}

func TestParseAttribute(t *testing.T) {
	for name, want := range map[string]fs.AttributeSet{
		"hidden":       fs.AttributeHidden,
		"Hidden":       fs.AttributeHidden,
		"HIDDEN":       fs.AttributeHidden,
		" readonly ":   fs.AttributeReadOnly,
		"system":       fs.AttributeSystem,
		"directory":    fs.AttributeDirectory,
		"archive":      fs.AttributeArchive,
		"reparsepoint": fs.AttributeReparsePoint,
	} {
		got, err := fs.ParseAttribute(name)
		require.NoError(t, err, "name %q", name)
		require.Equal(t, want, got, "name %q", name)
	}

	_, err := fs.ParseAttribute("wibble")
	require.Error(t, err)

	_, err = fs.ParseAttribute("")
	require.Error(t, err)
}
