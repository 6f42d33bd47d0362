// Package passphrase turns user supplied keys into fixed-length cipher passphrases.
package passphrase

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Length is the number of runes in a derived passphrase.
const Length = 32

// ErrEmptyKey is returned when deriving from an empty key.
var ErrEmptyKey = errors.New("key must not be empty")

// Derive repeats key until it is at least Length runes long and returns the first Length runes.
// Keys longer than Length are truncated.
func Derive(key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	var acc strings.Builder

	for n := 0; n < Length; n += utf8.RuneCountInString(key) {
		acc.WriteString(key)
	}

	return truncate(acc.String(), Length), nil
}

// MustDerive is like Derive but panics on an empty key.
func MustDerive(key string) string {
	derived, err := Derive(key)
	if err != nil {
		panic(err)
	}

	return derived
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	var count int

	for i := range s {
		if count == n {
			return s[:i]
		}

		count++
	}

	return s
}
