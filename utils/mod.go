package utils

import "cmp"

// ArgMax returns the candidate whose value is largest. Ties go to the smallest
// candidate, whatever order candidates come in. It returns -1 when there are
// no candidates.
func ArgMax[T cmp.Ordered](values []T, candidates []int) int {
	best := -1
	for _, c := range candidates {
		if best == -1 || values[c] > values[best] || (values[c] == values[best] && c < best) {
			best = c
		}
	}
	return best
}

// Max returns the largest value, or the zero value for an empty slice.
func Max[T cmp.Ordered](values []T) T {
	var m T
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
