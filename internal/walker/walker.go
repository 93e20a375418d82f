// Package walker enumerates the files of a directory tree for batch
// processing. Files are handed to a callback as they are found, so work on
// early files starts before the whole tree has been read.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harrison/nblbatch/internal/models"
)

// Options configures which files a walk yields
type Options struct {
	// Include is a list of doublestar patterns matched against the
	// slash-separated path relative to the root. Empty means every file.
	Include []string

	// Exclude is a list of doublestar patterns; matching files are skipped
	// and matching directories are pruned.
	Exclude []string

	// SkipPaths lists slash-separated paths relative to the root that are
	// never yielded (e.g. a lock file of a destination inside the root)
	SkipPaths []string
}

// VisitFunc is called once per discovered file. Returning an error stops
// the walk and Walk returns that error unchanged.
type VisitFunc func(entry models.FileEntry) error

// Walk visits every regular file below root in lexical order.
// Directories are never yielded. Symlinks to regular files are yielded;
// symlinked directories are not followed. An unreadable path aborts the
// walk with a *TraversalError.
func Walk(ctx context.Context, root string, opts Options, visit VisitFunc) error {
	if err := CheckRoot(root); err != nil {
		return err
	}

	m, err := newMatcher(root, opts)
	if err != nil {
		return err
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &TraversalError{Path: path, Err: err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return &TraversalError{Path: path, Err: err}
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if m.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		if m.skipFile(rel) {
			return nil
		}

		return visit(models.NewFileEntry(root, path))
	})
}

// CheckRoot returns an error unless root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to access source root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source root is not a directory: %s", root)
	}
	return nil
}

// isRegular reports whether d is a regular file, resolving symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	target, err := os.Stat(path)
	if err != nil {
		// Dangling link
		return false
	}
	return target.Mode().IsRegular()
}

// Collect walks root and returns every yielded entry.
func Collect(ctx context.Context, root string, opts Options) ([]models.FileEntry, error) {
	var entries []models.FileEntry
	err := Walk(ctx, root, opts, func(entry models.FileEntry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
