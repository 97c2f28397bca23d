package slice

import (
	"golang.org/x/exp/slices"
)

// RemoveAt returns new slice with element at <idx> removed from <inp>.
//
// Returns copy of <inp> if <idx> is out of range.
func RemoveAt[T any](inp []T, idx int) []T {
	out := slices.Clone(inp)
	if idx < 0 || idx >= len(out) {
		return out
	}
	return slices.Delete(out, idx, idx+1)
}

// InsertAt returns new slice with <elms> inserted into <inp> at <idx>.
//
// <idx> is clamped to the range of <inp>.
func InsertAt[T any](inp []T, idx int, elms ...T) []T {
	out := slices.Clone(inp)
	idx = max(0, min(idx, len(out)))
	return slices.Insert(out, idx, elms...)
}
