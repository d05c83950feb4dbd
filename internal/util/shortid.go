package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateShortID returns a compact opaque identifier for an email
// record, distinct from its canonical UUID.
func GenerateShortID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}
