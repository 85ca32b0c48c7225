package utils

// FindIndexFunc returns the index of the first element satisfying match, or
// -1.
func FindIndexFunc[T any](slice []T, match func(T) bool) int {
	for i, v := range slice {
		if match(v) {
			return i
		}
	}
	return -1
}
