package biometric

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// DescriptorLength is fixed by the recognition model: every face is
// summarized as 128 floats.
const DescriptorLength = 128

var (
	ErrInvalidDescriptor = errors.New("invalid descriptor: must be 128 finite floats")
	ErrNoFaceDetected    = errors.New("no face detected in image")
)

// Descriptor is a validated, fixed-length face descriptor. Construct it
// through ParseDescriptor or DecodeDescriptorJSON so the length and
// finiteness invariants hold everywhere downstream.
type Descriptor [DescriptorLength]float64

// ParseDescriptor validates a raw float slice into a typed descriptor.
func ParseDescriptor(values []float64) (Descriptor, error) {
	var descriptor Descriptor
	if len(values) != DescriptorLength {
		return descriptor, fmt.Errorf("%w: got length %d", ErrInvalidDescriptor, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return descriptor, fmt.Errorf("%w: non-finite value at index %d", ErrInvalidDescriptor, i)
		}
		descriptor[i] = v
	}
	return descriptor, nil
}

// DecodeDescriptorJSON accepts the two payload shapes seen in the wild: a
// bare JSON array of numbers, or that same array serialized again as a
// JSON string. Anything else is rejected before it can reach the matcher.
func DecodeDescriptorJSON(raw []byte) (Descriptor, error) {
	var descriptor Descriptor
	if len(raw) == 0 {
		return descriptor, ErrInvalidDescriptor
	}

	var values []float64
	if err := json.Unmarshal(raw, &values); err == nil {
		return ParseDescriptor(values)
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return descriptor, fmt.Errorf("%w: unparseable payload", ErrInvalidDescriptor)
	}
	if err := json.Unmarshal([]byte(text), &values); err != nil {
		return descriptor, fmt.Errorf("%w: unparseable payload", ErrInvalidDescriptor)
	}
	return ParseDescriptor(values)
}

// Serialize renders the descriptor as JSON array text for storage or
// transport.
func (d Descriptor) Serialize() string {
	encoded, _ := json.Marshal(d[:])
	return string(encoded)
}

// Slice returns a copy of the descriptor values.
func (d Descriptor) Slice() []float64 {
	values := make([]float64, DescriptorLength)
	copy(values, d[:])
	return values
}
