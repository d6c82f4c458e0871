package order

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// referenceAlphabet deliberately excludes 0, O, 1 and I, which transcribe
// and scan badly.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const ReferenceCodeLength = 8

// NewReferenceCode returns an 8-character code drawn from the 32-symbol
// reference alphabet. Uniqueness is probabilistic; callers enforce it
// against the store's unique constraint. An entropy failure is propagated,
// never degraded to a weaker source.
func NewReferenceCode() (string, error) {
	buf := make([]byte, ReferenceCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	code := make([]byte, ReferenceCodeLength)
	for i, b := range buf {
		code[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return string(code), nil
}

// NormalizeReferenceCode uppercases a code for lookup; codes are stored
// uppercase, so lookups become case-insensitive.
func NormalizeReferenceCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
