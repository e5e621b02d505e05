//go:build !windows

package localfs

import (
	"os"
	"strings"

	"github.com/treefind/treefind/fs"
)

// platformSpecificAttributes maps Unix file metadata onto the attribute
// bitset. There is no native hidden bit, so the usual dotfile convention
// applies.
func platformSpecificAttributes(fi os.FileInfo) fs.AttributeSet {
	var a fs.AttributeSet

	if fi.IsDir() {
		a |= fs.AttributeDirectory
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		a |= fs.AttributeReparsePoint
	}

	if strings.HasPrefix(fi.Name(), ".") {
		a |= fs.AttributeHidden
	}

	if fi.Mode().Perm()&0o222 == 0 {
		a |= fs.AttributeReadOnly
	}

	return a
}
