// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Symptom names are frequently entered in Vietnamese ("Đau đầu"), so accents
// are stripped and the Vietnamese D-stroke is folded before sanitizing.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	foldStroke      = strings.NewReplacer("đ", "d", "Đ", "d")
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Folds characters without a decomposition (đ) to ASCII.
//  2. Normalizes to NFD and removes combining marks (accents).
//  3. Lowercases, replaces every non-alphanumeric run with a single hyphen
//     and trims leading/trailing hyphens.
func From(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, foldStroke.Replace(s))
	if err != nil {
		result = s
	}

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	return strings.Trim(result, "-")
}
