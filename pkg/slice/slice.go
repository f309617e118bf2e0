// Copyright (c) 2026 Demarthology. All rights reserved.
// Author: htilssu

/*
Package slice complements the standard [slices] package with generic
transformations used when projecting entities onto response DTOs.
*/
package slice

// Map maps a slice of type T to a slice of type U. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true.
func Filter[T any](input []T, predicate func(T) bool) []T {
	var result []T
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}
