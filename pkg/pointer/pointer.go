// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package pointer provides generic helpers for optional fields in PATCH-style
request payloads, where nil means "leave unchanged".
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Fallback dereferences p, returning fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
