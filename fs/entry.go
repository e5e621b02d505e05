// Package fs defines the filesystem entry model used by the traversal engine.
package fs

import (
	"context"
	"errors"
	"os"
	"sort"
)

// Entry represents a filesystem entry, which can be Directory, File, or Symlink.
type Entry interface {
	os.FileInfo

	// Attributes returns the attribute bitset of the entry.
	Attributes() AttributeSet

	// ParentDir returns the path of the directory containing the entry.
	ParentDir() string

	// FullPath returns the full path of the entry.
	FullPath() string
}

// Entries is a list of entries sorted by name.
type Entries []Entry

// File represents an entry that is a regular file.
type File interface {
	Entry
}

// Directory represents contents of a directory.
type Directory interface {
	Entry
	Child(ctx context.Context, name string) (Entry, error)

	// Readdir returns the children of the directory. When listing fails
	// part-way through, Readdir returns the entries read so far together
	// with the error, so callers can continue past unreadable content.
	Readdir(ctx context.Context) (Entries, error)
}

// Symlink represents a symbolic link entry.
type Symlink interface {
	Entry
	Readlink(ctx context.Context) (string, error)

	// Resolve returns the entry the link ultimately points at.
	Resolve(ctx context.Context) (Entry, error)
}

// CanonicalPather is implemented by entries that can report a canonical
// identity for their path, with all symbolic links resolved.
type CanonicalPather interface {
	CanonicalPath() (string, error)
}

// ErrEntryNotFound is returned when an entry is not found.
var ErrEntryNotFound = errors.New("entry not found")

// ReadDirAndFindChild reads all entries from a directory and returns one by name.
// This is a convenience function that may be helpful in implementations of Directory.Child().
func ReadDirAndFindChild(ctx context.Context, d Directory, name string) (Entry, error) {
	children, err := d.Readdir(ctx)
	if err != nil {
		return nil, err
	}

	e := children.FindByName(name)
	if e == nil {
		return nil, ErrEntryNotFound
	}

	return e, nil
}

// FindByName returns an entry with a given name, or nil if not found.
func (e Entries) FindByName(n string) Entry {
	i := sort.Search(
		len(e),
		func(i int) bool {
			return e[i].Name() >= n
		},
	)
	if i < len(e) && e[i].Name() == n {
		return e[i]
	}

	return nil
}

// Sort sorts the entries by name.
func (e Entries) Sort() {
	sort.Slice(e, func(i, j int) bool {
		return e[i].Name() < e[j].Name()
	})
}
