package sequence

import (
	"slices"
	"strings"
)

// File is a candidate file with its extracted key
type File struct {
	Name string // Base name
	Key  Key
}

// Compare orders files for listing. Files with a key come first in
// ascending numeric order; files without a key follow. Ties and keyless
// files are ordered by name, making the order total.
func Compare(a, b File) int {
	switch {
	case a.Key.Valid && !b.Key.Valid:
		return -1
	case !a.Key.Valid && b.Key.Valid:
		return 1
	case a.Key.Valid && b.Key.Valid:
		if c := CompareKeys(a.Key, b.Key); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Name, b.Name)
}

// Sort builds Files for names and returns them in listing order.
func Sort(names []string) []File {
	files := make([]File, 0, len(names))
	for _, name := range names {
		files = append(files, File{Name: name, Key: ExtractKey(name)})
	}
	slices.SortFunc(files, Compare)
	return files
}

// Skipped reports whether name contains the skip marker.
// An empty marker skips nothing.
func Skipped(name, marker string) bool {
	return marker != "" && strings.Contains(name, marker)
}
