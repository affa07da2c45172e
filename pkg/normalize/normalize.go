// Copyright (c) 2026 ClaimPoint. All rights reserved.

// Package normalize folds arbitrary Unicode strings into a plain ASCII,
// lowercase search form.
//
// # Usage
//
// Found-item searches must match regardless of casing and accents: a staff
// member who records "Café loyalty card" should be findable by a user typing
// "cafe". Both the stored search column and the incoming query pass through
// [Fold] so comparison is byte-for-byte.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// multiSpace collapses runs of whitespace into a single space.
var multiSpace = regexp.MustCompile(`\s{2,}`)

// Fold converts a Unicode string into its canonical search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces punctuation with spaces, collapses and trims whitespace.
func Fold(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Strip punctuation so "i-phone" matches "iphone 13" queries loosely
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	// 4. Clean up whitespace
	result = multiSpace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
