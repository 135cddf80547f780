// Package stats holds the small descriptive statistics used for grading.
package stats

import (
	"slices"
)

// Mean returns the arithmetic average of values, or 0 for an empty slice.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Median returns the statistical median of values: the middle value of the
// sorted data, or the average of the two middle values for an even count.
// It returns 0 for an empty slice and does not reorder values.
func Median(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// Mode returns the most frequent value. Ties go to the value that occurs
// first in values. The second result is false for an empty slice.
func Mode[T comparable](values []T) (T, bool) {
	var best T
	if len(values) == 0 {
		return best, false
	}

	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	bestCount := 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, true
}
