// Package scoring holds the five pure sub-scores used by the matcher.
//
// Every function here is deterministic, reads no clock and performs no I/O.
// All results are integers in [0, 100].
package scoring

import "math"

// Score bounds.
const (
	minScore = 0
	maxScore = 100
)

// round converts a real score into the reported integer, clamped to [0, 100].
func round(x float64) int {
	if math.IsNaN(x) {
		return minScore
	}
	r := math.Round(x)
	if r < minScore {
		return minScore
	}
	if r > maxScore {
		return maxScore
	}
	return int(r)
}
