// Package mockfs implements in-memory filesystem for testing.
package mockfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/treefind/treefind/fs"
)

type entry struct {
	name       string
	mode       os.FileMode
	size       int64
	modTime    time.Time
	attributes fs.AttributeSet

	parent *Directory
}

func (e *entry) Name() string {
	return e.name
}

func (e *entry) IsDir() bool {
	return e.mode.IsDir()
}

func (e *entry) Mode() os.FileMode {
	return e.mode
}

func (e *entry) ModTime() time.Time {
	return e.modTime
}

func (e *entry) Size() int64 {
	return e.size
}

func (e *entry) Sys() interface{} {
	return nil
}

func (e *entry) Attributes() fs.AttributeSet {
	return e.attributes
}

func (e *entry) ParentDir() string {
	if e.parent == nil {
		return ""
	}

	return e.parent.FullPath()
}

func (e *entry) FullPath() string {
	if e.parent == nil {
		return e.name
	}

	return filepath.Join(e.parent.FullPath(), e.name)
}

// SetAttributes replaces the attribute set of the entry.
func (e *entry) SetAttributes(a fs.AttributeSet) {
	e.attributes = a
}

// AddAttributes adds the provided attributes to the entry.
func (e *entry) AddAttributes(a fs.AttributeSet) {
	e.attributes |= a
}

// Directory is mock in-memory implementation of fs.Directory.
type Directory struct {
	entry

	children     fs.Entries
	readdirError error
	onReaddir    func()
}

// AddFile adds a mock file with the specified name, size and permissions.
func (imd *Directory) AddFile(name string, size int64, permissions os.FileMode) *File {
	imd, name = imd.resolveSubdir(name)
	file := &File{
		entry: entry{
			name: name,
			mode: permissions,
			size: size,
		},
	}

	imd.addChild(file)

	return file
}

// AddDir adds a fake directory with a given name and permissions.
func (imd *Directory) AddDir(name string, permissions os.FileMode) *Directory {
	imd, name = imd.resolveSubdir(name)

	subdir := &Directory{
		entry: entry{
			name:       name,
			mode:       permissions | os.ModeDir,
			attributes: fs.AttributeDirectory,
		},
	}

	imd.addChild(subdir)

	return subdir
}

// AddSymlink adds a fake symlink pointing at the given target entry.
func (imd *Directory) AddSymlink(name string, target fs.Entry) *Symlink {
	imd, name = imd.resolveSubdir(name)

	link := &Symlink{
		entry: entry{
			name:       name,
			mode:       os.ModeSymlink | 0o777,
			attributes: fs.AttributeReparsePoint,
		},
		target: target,
	}

	imd.addChild(link)

	return link
}

func (imd *Directory) addChild(e fs.Entry) {
	if strings.Contains(e.Name(), "/") {
		panic("child name cannot contain '/'")
	}

	switch c := e.(type) {
	case *Directory:
		c.parent = imd
	case *File:
		c.parent = imd
	case *Symlink:
		c.parent = imd
	}

	imd.children = append(imd.children, e)
	imd.children.Sort()
}

func (imd *Directory) resolveSubdir(name string) (parent *Directory, leaf string) {
	parts := strings.Split(name, "/")
	for _, n := range parts[0 : len(parts)-1] {
		imd = imd.Subdir(n)
	}

	return imd, parts[len(parts)-1]
}

// Subdir finds a subdirectory with a given name.
func (imd *Directory) Subdir(name ...string) *Directory {
	i := imd

	for _, n := range name {
		i2 := i.children.FindByName(n)
		if i2 == nil {
			panic(fmt.Sprintf("'%s' not found in '%s'", n, i.Name()))
		}

		if !i2.IsDir() {
			panic(fmt.Sprintf("'%s' is not a directory in '%s'", n, i.Name()))
		}

		i = i2.(*Directory)
	}

	return i
}

// Remove removes directory entry with a given name.
func (imd *Directory) Remove(name string) {
	newChildren := imd.children[:0]

	for _, e := range imd.children {
		if e.Name() != name {
			newChildren = append(newChildren, e)
		}
	}

	imd.children = newChildren
}

// FailReaddir causes the subsequent Readdir() calls to fail with the specified error.
func (imd *Directory) FailReaddir(err error) {
	imd.readdirError = err
}

// OnReaddir invokes the provided function on read.
func (imd *Directory) OnReaddir(cb func()) {
	imd.onReaddir = cb
}

// Child gets the named child of a directory.
func (imd *Directory) Child(ctx context.Context, name string) (fs.Entry, error) {
	return fs.ReadDirAndFindChild(ctx, imd, name)
}

// Readdir gets the contents of a directory.
func (imd *Directory) Readdir(ctx context.Context) (fs.Entries, error) {
	if imd.readdirError != nil {
		return nil, imd.readdirError
	}

	if imd.onReaddir != nil {
		imd.onReaddir()
	}

	return append(fs.Entries(nil), imd.children...), nil
}

// File is an in-memory fs.File.
type File struct {
	entry
}

// Symlink is an in-memory fs.Symlink with a fixed target.
type Symlink struct {
	entry

	target fs.Entry
}

// Readlink returns the path of the link target.
func (imsl *Symlink) Readlink(ctx context.Context) (string, error) {
	if imsl.target == nil {
		return "", os.ErrNotExist
	}

	return imsl.target.FullPath(), nil
}

// Resolve returns the target entry of the link.
func (imsl *Symlink) Resolve(ctx context.Context) (fs.Entry, error) {
	if imsl.target == nil {
		return nil, os.ErrNotExist
	}

	return imsl.target, nil
}

// NewDirectory returns new mock directory rooted at "/".
func NewDirectory() *Directory {
	return NewDirectoryWithPath("/")
}

// NewDirectoryWithPath returns new mock directory rooted at the given path.
func NewDirectoryWithPath(path string) *Directory {
	return &Directory{
		entry: entry{
			name:       path,
			mode:       0o777 | os.ModeDir,
			attributes: fs.AttributeDirectory,
		},
	}
}

var (
	_ fs.Directory = &Directory{}
	_ fs.File      = &File{}
	_ fs.Symlink   = &Symlink{}
)
