// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs are the human-readable identifiers for products and categories
// (e.g., "el-yapimi-seramik-fincan"). This package handles normalization,
// accent removal, and character sanitization, with explicit handling for
// Turkish letters that do not decompose into base + combining mark.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// turkish maps the letters NFD cannot reduce. Dotless ı has no combining
	// decomposition, and İ lowercases to "i" plus a combining dot.
	turkish = strings.NewReplacer(
		"ı", "i", "İ", "i",
		"ş", "s", "Ş", "s",
		"ğ", "g", "Ğ", "g",
	)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Replaces Turkish letters that lack a combining-mark decomposition.
// 2. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 3. Removes combining marks (accents).
// 4. Converts to lowercase.
// 5. Replaces non-alphanumeric characters with hyphens.
// 6. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	// 1. Turkish-specific substitutions before generic normalization
	s = turkish.Replace(s)

	// 2. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 3. Lowercase
	result = strings.ToLower(result)

	// 4. Replace whitespace and special chars with hyphens
	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	// 5. Clean up hyphenation
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
