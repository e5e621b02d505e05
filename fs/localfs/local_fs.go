// Package localfs implements fs.Entry for entries in the local filesystem.
package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/treefind/treefind/fs"
	"github.com/treefind/treefind/logging"
)

// number of directory entry names to read in one shot
const numEntriesToRead = 100

var log = logging.Module("treefind/localfs")

type filesystemEntry struct {
	name       string
	size       int64
	mtimeNanos int64
	mode       os.FileMode
	attributes fs.AttributeSet

	parentDir string
}

func (e *filesystemEntry) Name() string {
	return e.name
}

func (e *filesystemEntry) IsDir() bool {
	return e.mode.IsDir()
}

func (e *filesystemEntry) Mode() os.FileMode {
	return e.mode
}

func (e *filesystemEntry) Size() int64 {
	return e.size
}

func (e *filesystemEntry) ModTime() time.Time {
	return time.Unix(0, e.mtimeNanos)
}

func (e *filesystemEntry) Sys() interface{} {
	return nil
}

func (e *filesystemEntry) Attributes() fs.AttributeSet {
	return e.attributes
}

func (e *filesystemEntry) ParentDir() string {
	return e.parentDir
}

func (e *filesystemEntry) FullPath() string {
	return filepath.Join(e.parentDir, e.name)
}

// CanonicalPath resolves all symbolic links in the entry path, producing
// an identity suitable for visited-path tracking.
func (e *filesystemEntry) CanonicalPath() (string, error) {
	p, err := filepath.EvalSymlinks(e.FullPath())
	if err != nil {
		return "", errors.Wrap(err, "unable to canonicalize path")
	}

	return p, nil
}

var (
	_ os.FileInfo        = (*filesystemEntry)(nil)
	_ fs.CanonicalPather = (*filesystemEntry)(nil)
)

func newEntry(fi os.FileInfo, parentDir string) filesystemEntry {
	return filesystemEntry{
		fi.Name(),
		fi.Size(),
		fi.ModTime().UnixNano(),
		fi.Mode(),
		platformSpecificAttributes(fi),
		parentDir,
	}
}

type filesystemDirectory struct {
	filesystemEntry
}

type filesystemSymlink struct {
	filesystemEntry
}

type filesystemFile struct {
	filesystemEntry
}

func (fsd *filesystemDirectory) Size() int64 {
	// force directory size to always be zero
	return 0
}

func (fsd *filesystemDirectory) Child(ctx context.Context, name string) (fs.Entry, error) {
	fullPath := fsd.FullPath()

	st, err := os.Lstat(filepath.Join(fullPath, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fs.ErrEntryNotFound
		}

		return nil, errors.Wrap(err, "unable to get child")
	}

	return entryFromChildFileInfo(st, fullPath)
}

func (fsd *filesystemDirectory) Readdir(ctx context.Context) (fs.Entries, error) {
	fullPath := fsd.FullPath()

	f, direrr := os.Open(fullPath) //nolint:gosec
	if direrr != nil {
		return nil, errors.Wrap(direrr, "unable to read directory")
	}
	defer f.Close() //nolint:errcheck,gosec

	var (
		entries    fs.Entries
		readDirErr error
	)

	for {
		names, err := f.Readdirnames(numEntriesToRead)

		for _, n := range names {
			fi, staterr := os.Lstat(filepath.Join(fullPath, n))

			switch {
			case os.IsNotExist(staterr):
				// lost the race - ignore.
				continue
			case staterr != nil:
				if readDirErr == nil {
					readDirErr = errors.Wrapf(staterr, "unable to stat directory entry %q", n)
				}

				continue
			}

			e, fierr := entryFromChildFileInfo(fi, fullPath)
			if fierr != nil {
				log(ctx).Warnf("unable to create directory entry %q: %v", fi.Name(), fierr)
				continue
			}

			entries = append(entries, e)
		}

		if err == nil {
			continue
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if readDirErr == nil {
			readDirErr = err
		}

		break
	}

	entries.Sort()

	// return any error encountered when listing or examining the directory
	// along with whatever entries could be read.
	return entries, readDirErr
}

func (fsl *filesystemSymlink) Readlink(ctx context.Context) (string, error) {
	//nolint:wrapcheck
	return os.Readlink(fsl.FullPath())
}

func (fsl *filesystemSymlink) Resolve(ctx context.Context) (fs.Entry, error) {
	target, err := filepath.EvalSymlinks(fsl.FullPath())
	if err != nil {
		return nil, errors.Wrap(err, "unable to resolve symlink")
	}

	return NewEntry(target)
}

// NewEntry returns fs.Entry for the specified path, the result will be one of supported entry types: fs.File, fs.Directory, fs.Symlink.
func NewEntry(path string) (fs.Entry, error) {
	path = filepath.Clean(path)

	fi, err := os.Lstat(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to determine entry type")
	}

	switch fi.Mode() & os.ModeType {
	case os.ModeDir:
		return &filesystemDirectory{newEntry(fi, filepath.Dir(path))}, nil

	case os.ModeSymlink:
		return &filesystemSymlink{newEntry(fi, filepath.Dir(path))}, nil

	case 0:
		return &filesystemFile{newEntry(fi, filepath.Dir(path))}, nil

	default:
		return nil, errors.Errorf("unsupported filesystem entry: %v", fi)
	}
}

// Directory returns fs.Directory for the specified path.
func Directory(path string) (fs.Directory, error) {
	e, err := NewEntry(path)
	if err != nil {
		return nil, err
	}

	if d, ok := e.(fs.Directory); ok {
		return d, nil
	}

	return nil, errors.Errorf("not a directory: %v", path)
}

func entryFromChildFileInfo(fi os.FileInfo, parentDir string) (fs.Entry, error) {
	switch fi.Mode() & os.ModeType {
	case os.ModeDir:
		return &filesystemDirectory{newEntry(fi, parentDir)}, nil

	case os.ModeSymlink:
		return &filesystemSymlink{newEntry(fi, parentDir)}, nil

	case 0:
		return &filesystemFile{newEntry(fi, parentDir)}, nil

	default:
		return nil, errors.Errorf("unsupported filesystem entry: %v", fi)
	}
}

var (
	_ fs.Directory = &filesystemDirectory{}
	_ fs.File      = &filesystemFile{}
	_ fs.Symlink   = &filesystemSymlink{}
)
