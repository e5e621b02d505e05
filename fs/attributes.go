package fs

import (
	"strings"

	"github.com/pkg/errors"
)

// AttributeSet is a bitset of filesystem entry attributes.
type AttributeSet uint32

// Supported attributes.
const (
	AttributeReadOnly AttributeSet = 1 << iota
	AttributeHidden
	AttributeSystem
	AttributeDirectory
	AttributeArchive
	AttributeReparsePoint

	// AttributeNormal indicates no other attribute is set.
	AttributeNormal AttributeSet = 0
)

var attributeNames = []struct {
	flag AttributeSet
	name string
}{
	{AttributeReadOnly, "readonly"},
	{AttributeHidden, "hidden"},
	{AttributeSystem, "system"},
	{AttributeDirectory, "directory"},
	{AttributeArchive, "archive"},
	{AttributeReparsePoint, "reparsepoint"},
}

// Has determines whether all attributes in the provided set are present.
func (a AttributeSet) Has(flag AttributeSet) bool {
	return a&flag == flag
}

func (a AttributeSet) String() string {
	if a == AttributeNormal {
		return "normal"
	}

	var parts []string

	for _, an := range attributeNames {
		if a.Has(an.flag) {
			parts = append(parts, an.name)
		}
	}

	return strings.Join(parts, ",")
}

// ParseAttribute maps a case-insensitive attribute name to its flag.
func ParseAttribute(name string) (AttributeSet, error) {
	n := strings.ToLower(strings.TrimSpace(name))

	for _, an := range attributeNames {
		if an.name == n {
			return an.flag, nil
		}
	}

	return 0, errors.Errorf("unsupported attribute name: %q", name)
}
