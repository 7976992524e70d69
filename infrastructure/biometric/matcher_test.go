package biometric

import (
	"errors"
	"math"
	"testing"
)

func uniformDescriptor(value float64) Descriptor {
	var descriptor Descriptor
	for i := range descriptor {
		descriptor[i] = value
	}
	return descriptor
}

func TestMatchSymmetry(t *testing.T) {
	a := uniformDescriptor(0.12)
	b := uniformDescriptor(0.19)
	for i := range b {
		b[i] += float64(i) * 0.001
	}

	ab, err := Match(a, b, 0.6)
	if err != nil {
		t.Fatalf("Match(a, b) returned error: %v", err)
	}
	ba, err := Match(b, a, 0.6)
	if err != nil {
		t.Fatalf("Match(b, a) returned error: %v", err)
	}

	if ab.Distance != ba.Distance {
		t.Errorf("distance not symmetric: %v vs %v", ab.Distance, ba.Distance)
	}
	if ab.IsMatch != ba.IsMatch {
		t.Errorf("decision not symmetric: %v vs %v", ab.IsMatch, ba.IsMatch)
	}
}

func TestMatchReflexivity(t *testing.T) {
	a := uniformDescriptor(-0.37)
	result, err := Match(a, a, 0.6)
	if err != nil {
		t.Fatalf("Match(a, a) returned error: %v", err)
	}
	if result.Distance != 0 {
		t.Errorf("Match(a, a).Distance = %v, want 0", result.Distance)
	}
	if !result.IsMatch {
		t.Error("Match(a, a) should be a match")
	}
}

func TestMatchThresholdBoundaryIsStrict(t *testing.T) {
	// a zero vector against one with a single 0.6 component has distance
	// exactly 0.6
	a := uniformDescriptor(0)
	b := uniformDescriptor(0)
	b[0] = 0.6

	result, err := Match(a, b, 0.6)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Distance != 0.6 {
		t.Fatalf("expected boundary distance 0.6, got %v", result.Distance)
	}
	if result.IsMatch {
		t.Error("distance exactly at threshold must not match")
	}

	// just inside the threshold is a match
	b[0] = 0.6 - 1e-9
	result, _ = Match(a, b, 0.6)
	if !result.IsMatch {
		t.Error("distance just below threshold must match")
	}
}

func TestMatchRejectsNonFiniteValues(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{name: "nan", value: math.NaN()},
		{name: "positive infinity", value: math.Inf(1)},
		{name: "negative infinity", value: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := uniformDescriptor(0.1)
			b := uniformDescriptor(0.1)
			b[42] = tt.value

			_, err := Match(a, b, 0.6)
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("expected ErrInvalidDescriptor, got %v", err)
			}
		})
	}
}

func TestMatchDistanceComputation(t *testing.T) {
	a := uniformDescriptor(0)
	b := uniformDescriptor(0)
	// two orthogonal displacements of 3 and 4 -> distance 5
	b[0] = 3
	b[1] = 4

	result, err := Match(a, b, 0.6)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if math.Abs(result.Distance-5) > 1e-12 {
		t.Errorf("distance = %v, want 5", result.Distance)
	}
	if result.IsMatch {
		t.Error("distance 5 against threshold 0.6 must not match")
	}
}
