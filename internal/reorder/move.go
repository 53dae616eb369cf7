package reorder

import "slices"

// Move returns a copy of items with the element at from relocated to index to.
// Every other element keeps its relative order. Out-of-range indices leave the
// copy unchanged.
func Move[T any](items []T, from, to int) []T {
	out := slices.Clone(items)
	if !InRange(from, len(out)) || !InRange(to, len(out)) || from == to {
		return out
	}

	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// InRange reports whether index addresses one of n slots.
func InRange(index, n int) bool {
	return index >= 0 && index < n
}
