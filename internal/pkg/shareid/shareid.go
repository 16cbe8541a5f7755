// Package shareid generates the fixed-length public handles users share with
// each other. Handles are immutable after creation.
package shareid

import (
	"crypto/rand"
	"fmt"
)

// Length is the fixed share-id length.
const Length = 10

// Crockford-style alphabet, no ambiguous characters.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share id: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
