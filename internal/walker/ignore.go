package walker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreFileName is the gitignore-syntax file read from the walk root
const IgnoreFileName = ".nblignore"

// matcher decides which paths a walk skips.
// It combines include/exclude globs with the root's ignore file.
type matcher struct {
	include   []string
	exclude   []string
	skipPaths map[string]bool
	ignore    gitignore.GitIgnore
}

func newMatcher(root string, opts Options) (*matcher, error) {
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
		}
	}

	m := &matcher{
		include:   opts.Include,
		exclude:   opts.Exclude,
		skipPaths: make(map[string]bool, len(opts.SkipPaths)),
		ignore:    loadIgnoreFile(filepath.Join(root, IgnoreFileName), root),
	}
	for _, rel := range opts.SkipPaths {
		m.skipPaths[path.Clean(rel)] = true
	}
	return m, nil
}

// skipDir reports whether the directory at rel should be pruned.
func (m *matcher) skipDir(rel string) bool {
	if matchAny(m.exclude, rel) {
		return true
	}
	return m.ignored(rel, true)
}

// skipFile reports whether the file at rel should not be yielded.
func (m *matcher) skipFile(rel string) bool {
	if m.skipPaths[rel] || rel == IgnoreFileName {
		return true
	}
	if matchAny(m.exclude, rel) {
		return true
	}
	if m.ignored(rel, false) {
		return true
	}
	if len(m.include) > 0 && !matchAny(m.include, rel) {
		return true
	}
	return false
}

func (m *matcher) ignored(rel string, isDir bool) bool {
	if m.ignore == nil {
		return false
	}
	match := m.ignore.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
// A missing file yields nil.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
