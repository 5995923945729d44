package sarc

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"
)

// FS exposes an Archive as a flat, read-only file system.
//
// Every file whose name is a valid fs path without a slash appears at the
// root. When several files share a name, the first one wins, matching
// Archive.Find. Other files are reachable only through the Archive.
//
// FS implements fs.FS, fs.StatFS, fs.ReadFileFS, and fs.ReadDirFS.
type FS struct {
	a *Archive
}

// Interface compliance.
var (
	_ fs.FS         = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
)

// NewFS returns a file system view of a.
func NewFS(a *Archive) *FS {
	return &FS{a: a}
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return &rootDir{entries: f.dirEntries()}, nil
	}
	view, ok := f.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &openFile{Reader: view.Reader(), info: newFileInfo(view)}, nil
}

// Stat implements fs.StatFS.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return rootInfo{}, nil
	}
	view, ok := f.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return newFileInfo(view), nil
}

// ReadFile implements fs.ReadFileFS.
// The returned slice is a copy and may be modified by the caller.
func (f *FS) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	view, ok := f.lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	return bytes.Clone(view.Data()), nil
}

// ReadDir implements fs.ReadDirFS.
// Only the root directory exists; its entries are sorted by name.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	if name != "." {
		if _, ok := f.lookup(name); ok {
			return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
		}
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	entries := f.dirEntries()
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (f *FS) lookup(name string) (FileView, bool) {
	if strings.Contains(name, "/") {
		return FileView{}, false
	}
	view := f.a.Find(name)
	return view, view.Valid()
}

// dirEntries lists exposed files in archive order.
func (f *FS) dirEntries() []fs.DirEntry {
	seen := make(map[string]struct{})
	entries := make([]fs.DirEntry, 0, f.a.readableRecords())
	for _, view := range f.a.Files() {
		if !view.Valid() {
			continue
		}
		name := view.Name()
		if !fs.ValidPath(name) || name == "." || strings.Contains(name, "/") {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, fs.FileInfoToDirEntry(newFileInfo(view)))
	}
	return entries
}

// fileInfo implements fs.FileInfo for archive files.
type fileInfo struct {
	view FileView
}

func newFileInfo(view FileView) fileInfo { return fileInfo{view: view} }

func (fi fileInfo) Name() string       { return fi.view.Name() }
func (fi fileInfo) Size() int64        { return int64(fi.view.Size()) }
func (fi fileInfo) Mode() fs.FileMode  { return 0o444 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return false }

// Sys returns the underlying FileView.
func (fi fileInfo) Sys() any { return fi.view }

// rootInfo implements fs.FileInfo for the synthetic root directory.
type rootInfo struct{}

func (rootInfo) Name() string       { return "." }
func (rootInfo) Size() int64        { return 0 }
func (rootInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (rootInfo) ModTime() time.Time { return time.Time{} }
func (rootInfo) IsDir() bool        { return true }
func (rootInfo) Sys() any           { return nil }

// openFile implements fs.File over a file body.
type openFile struct {
	*bytes.Reader
	info fileInfo
}

func (f *openFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *openFile) Close() error               { return nil }

// rootDir implements fs.ReadDirFile for the root directory.
type rootDir struct {
	entries []fs.DirEntry
	offset  int
}

func (d *rootDir) Stat() (fs.FileInfo, error) { return rootInfo{}, nil }
func (d *rootDir) Close() error               { return nil }

func (d *rootDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: ".", Err: errors.New("is a directory")}
}

func (d *rootDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return slices.Clone(remaining), nil
	}
	if len(remaining) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(remaining))
	d.offset += n
	return slices.Clone(remaining[:n]), nil
}
