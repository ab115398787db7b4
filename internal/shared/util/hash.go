package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashParts returns the hex SHA-256 of parts joined with NUL separators, so
// ("ab","c") and ("a","bc") hash differently.
func HashParts(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
