package checker

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Normalize returns the canonical form of a raw URL used for checking and
// cache keying:
//   - Trim surrounding whitespace
//   - Prepend "https://" when no http/https scheme is present (scheme match
//     is case-insensitive)
//   - Strip a single trailing slash
//
// Differently-cased or trailing-slash variants of the same URL normalize to
// forms that hash identically. Pure; never fails.
func Normalize(raw string) string {
	u := strings.TrimSpace(raw)

	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "https://" + u
	}

	return strings.TrimSuffix(u, "/")
}

// HashURL derives the cache key for a normalized URL: the SHA-256 hex digest
// of its lower-cased, trimmed form with one trailing slash stripped. The
// digest only needs to be collision-resistant, not secret.
func HashURL(url string) string {
	key := strings.ToLower(strings.TrimSpace(url))
	key = strings.TrimSuffix(key, "/")

	sum := sha256.Sum256([]byte(key))

	return hex.EncodeToString(sum[:])
}
