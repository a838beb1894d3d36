package safe_random

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandomBytes returns n bytes from the system CSPRNG.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", n, err)
	}
	return b, nil
}
