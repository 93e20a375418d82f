package sequence

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects nbl files in the scanned directory
const DefaultPattern = "*.nbl"

// DefaultSkipMarker excludes files whose name contains it
const DefaultSkipMarker = "new"

// Discover returns the sorted names of the non-directory entries of dir
// matching pattern. It does not descend unless the pattern itself contains a
// separator or "**". As with shell globbing, names starting with a dot only
// match a pattern segment that starts with a dot.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, dir, err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		if hidden(pattern, match) {
			continue
		}
		st, err := fs.Stat(fsys, match)
		if err != nil || st.IsDir() {
			continue
		}
		names = append(names, match)
	}
	slices.Sort(names)
	return names, nil
}

// hidden reports whether match has a dot-prefixed element that the pattern
// did not name explicitly. A "**" never matches dot names.
func hidden(pattern, match string) bool {
	patSegs := strings.Split(pattern, "/")
	matchSegs := strings.Split(match, "/")
	aligned := len(patSegs) == len(matchSegs) && !slices.Contains(patSegs, "**")
	for i, seg := range matchSegs {
		if !strings.HasPrefix(seg, ".") {
			continue
		}
		if aligned && strings.HasPrefix(patSegs[i], ".") {
			continue
		}
		return true
	}
	return false
}
