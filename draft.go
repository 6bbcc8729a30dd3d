package gitfolio

// Draft-list helpers for the ordered sub-fields of a project
// (features, technologies, challenges, gallery). All are pure: the input
// slice is never modified and the result is a fresh slice, so callers can
// build up an edit over an in-memory draft and discard it without touching
// the stored record.

// AppendItem returns list with item appended.
func AppendItem[T any](list []T, item T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return append(out, item)
}

// RemoveAt returns list without the element at index i. Out-of-range
// indices return an unchanged copy.
func RemoveAt[T any](list []T, i int) []T {
	if i < 0 || i >= len(list) {
		out := make([]T, len(list))
		copy(out, list)
		return out
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// ReplaceAt returns list with the element at index i replaced by item.
// Out-of-range indices return an unchanged copy.
func ReplaceAt[T any](list []T, i int, item T) []T {
	out := make([]T, len(list))
	copy(out, list)
	if i >= 0 && i < len(list) {
		out[i] = item
	}
	return out
}
