// Package sequence orders a flat directory of nbl files by the sequence
// number embedded in their names ("nmll-<digits>...").
package sequence

import (
	"regexp"
	"strings"
)

var keyPattern = regexp.MustCompile(`nmll-(\d+)`)

// Key is the sequence number captured from a filename.
// Digits holds the number without leading zeros ("0" for zero), so keys of
// any length compare without overflow.
type Key struct {
	Digits string
	Valid  bool
}

// ExtractKey returns the first run of digits following "nmll-" in name, or
// an invalid Key when there is none.
func ExtractKey(name string) Key {
	match := keyPattern.FindStringSubmatch(name)
	if len(match) < 2 {
		return Key{}
	}
	digits := strings.TrimLeft(match[1], "0")
	if digits == "" {
		digits = "0"
	}
	return Key{Digits: digits, Valid: true}
}

// String returns the key's digits, or "-" for an invalid key.
func (k Key) String() string {
	if !k.Valid {
		return "-"
	}
	return k.Digits
}

// CompareKeys is a three-way numeric comparison of two valid keys.
// It returns a negative number when a < b, zero when equal and a positive
// number when a > b.
func CompareKeys(a, b Key) int {
	if len(a.Digits) != len(b.Digits) {
		return len(a.Digits) - len(b.Digits)
	}
	return strings.Compare(a.Digits, b.Digits)
}
