package models

import (
	"path/filepath"
)

// FileEntry is a file discovered during a directory walk.
// It is produced transiently and never persisted.
type FileEntry struct {
	// Path is the file path as walked (joined onto the walk root)
	Path string

	// RelPath is the slash-separated path relative to the walk root
	RelPath string

	// ParentName is the base name of the file's immediate parent directory
	ParentName string

	// BaseName is the file's own base name
	BaseName string
}

// NewFileEntry builds a FileEntry for path, found under root.
// The parent name is the real name of the containing directory, so a file
// sitting directly in a root given as "." or ".." gets that directory's
// name rather than the dot path.
func NewFileEntry(root, path string) FileEntry {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return FileEntry{
		Path:       path,
		RelPath:    filepath.ToSlash(rel),
		ParentName: parentName(path),
		BaseName:   filepath.Base(path),
	}
}

func parentName(path string) string {
	dir := filepath.Dir(filepath.Clean(path))
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Base(dir)
}

// Label returns "<parent>/<base>", the name printed in listing headers.
func (e FileEntry) Label() string {
	return e.ParentName + "/" + e.BaseName
}

// MirrorDir returns the extraction directory for the entry under dest:
// <dest>/<parent>/<base>.
func (e FileEntry) MirrorDir(dest string) string {
	return filepath.Join(dest, e.ParentName, e.BaseName)
}
