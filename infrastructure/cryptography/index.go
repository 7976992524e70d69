package cryptography

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

var CryptoHasher Hasher = argonHasher{}

// GenerateSecret returns byteLen cryptographically random bytes hex encoded.
// Used for session token secrets which must be generated server-side only.
func GenerateSecret(byteLen int) (string, error) {
	buffer := make([]byte, byteLen)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken is the one-way hash applied to session token secrets before
// storage. Only the digest ever touches the database; the raw secret lives
// with the client for the lifetime of the session.
func HashToken(secret string) string {
	digest := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(digest[:])
}

// ConstantTimeEquals compares two hex digests without leaking timing.
func ConstantTimeEquals(a string, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
