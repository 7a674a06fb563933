package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 hex digest of the UTF-8 bytes of text.
// It is the cache and idempotency key for generation sessions, so it must be
// deterministic across processes and collision resistant.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
