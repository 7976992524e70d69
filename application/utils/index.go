package utils

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULIDString() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.DefaultEntropy()).String()
}

func GetStringPointer(text string) *string {
	return &text
}

func GetBooleanPointer(data bool) *bool {
	return &data
}

func GetFloat64Pointer(data float64) *float64 {
	return &data
}

func GetUIntPointer(data uint) *uint {
	return &data
}

// Reads an environment-style value as a float, falling back to the
// provided default when it is unset or malformed.
func ParseFloatWithDefault(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// Reads an environment-style value as an int, falling back to the
// provided default when it is unset or malformed.
func ParseIntWithDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// DecodeBase64Image strips an optional data-url prefix and decodes the
// image bytes.
func DecodeBase64Image(encoded string) ([]byte, error) {
	if index := strings.Index(encoded, ","); index != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[index+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// Masks all but the last 4 digits of a phone number for display on the
// OTP screen.
func MaskPhoneNumber(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	masked := make([]byte, len(phone)-4)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + phone[len(phone)-4:]
}
