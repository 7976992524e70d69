package biometric

import (
	"math"
)

type MatchResult struct {
	Distance float64 `json:"distance"`
	IsMatch  bool    `json:"isMatch"`
}

// Match computes the Euclidean distance between two descriptors and
// renders the binary decision against threshold. Lower distance means
// higher similarity. The comparison is strict: a distance exactly at the
// threshold is not a match. Pure function, symmetric in its arguments.
func Match(a Descriptor, b Descriptor, threshold float64) (MatchResult, error) {
	for i := 0; i < DescriptorLength; i++ {
		if math.IsNaN(a[i]) || math.IsInf(a[i], 0) || math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
			return MatchResult{}, ErrInvalidDescriptor
		}
	}

	var sum float64
	for i := 0; i < DescriptorLength; i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	distance := math.Sqrt(sum)

	return MatchResult{
		Distance: distance,
		IsMatch:  distance < threshold,
	}, nil
}
