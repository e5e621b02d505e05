//go:build windows

package localfs

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/treefind/treefind/fs"
)

// platformSpecificAttributes maps Win32 file attribute flags onto the
// attribute bitset.
func platformSpecificAttributes(fi os.FileInfo) fs.AttributeSet {
	var a fs.AttributeSet

	if fi.IsDir() {
		a |= fs.AttributeDirectory
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		a |= fs.AttributeReparsePoint
	}

	fad, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return a
	}

	if fad.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		a |= fs.AttributeHidden
	}

	if fad.FileAttributes&windows.FILE_ATTRIBUTE_SYSTEM != 0 {
		a |= fs.AttributeSystem
	}

	if fad.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0 {
		a |= fs.AttributeReadOnly
	}

	if fad.FileAttributes&windows.FILE_ATTRIBUTE_ARCHIVE != 0 {
		a |= fs.AttributeArchive
	}

	if fad.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
		a |= fs.AttributeReparsePoint
	}

	return a
}
