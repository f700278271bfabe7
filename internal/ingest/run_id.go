package ingest

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRunID creates a random import run id suitable for logs and API
// responses. Format: "imp_" + 16 bytes hex.
func NewRunID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "imp_" + hex.EncodeToString(b), nil
}
