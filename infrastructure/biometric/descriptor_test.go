package biometric

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{
			name:   "valid 128 floats",
			values: make([]float64, 128),
		},
		{
			name:    "too short",
			values:  make([]float64, 127),
			wantErr: true,
		},
		{
			name:    "too long",
			values:  make([]float64, 129),
			wantErr: true,
		},
		{
			name:    "empty",
			values:  []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor(tt.values)
			if tt.wantErr && !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("expected ErrInvalidDescriptor, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeDescriptorJSON(t *testing.T) {
	values := make([]float64, 128)
	for i := range values {
		values[i] = float64(i) / 128
	}
	arrayForm, _ := json.Marshal(values)
	stringForm, _ := json.Marshal(string(arrayForm))

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "bare json array",
			raw:  string(arrayForm),
		},
		{
			name: "array serialized as json string",
			raw:  string(stringForm),
		},
		{
			name:    "empty payload",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "object payload",
			raw:     `{"descriptor": []}`,
			wantErr: true,
		},
		{
			name:    "string that is not an array",
			raw:     `"not a descriptor"`,
			wantErr: true,
		},
		{
			name:    "array with wrong length",
			raw:     "[" + strings.Repeat("0.1,", 63) + "0.1]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeDescriptorJSON([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDescriptor) {
					t.Errorf("expected ErrInvalidDescriptor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decoded[64] != values[64] {
				t.Errorf("decoded[64] = %v, want %v", decoded[64], values[64])
			}
		})
	}
}

func TestDescriptorSerializeRoundTrip(t *testing.T) {
	values := make([]float64, 128)
	for i := range values {
		values[i] = float64(i)*0.01 - 0.5
	}
	descriptor, err := ParseDescriptor(values)
	if err != nil {
		t.Fatalf("ParseDescriptor returned error: %v", err)
	}

	decoded, err := DecodeDescriptorJSON([]byte(descriptor.Serialize()))
	if err != nil {
		t.Fatalf("DecodeDescriptorJSON returned error: %v", err)
	}

	result, err := Match(descriptor, decoded, 0.6)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if result.Distance != 0 {
		t.Errorf("round-tripped descriptor distance = %v, want 0", result.Distance)
	}
}
