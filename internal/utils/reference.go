package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateTaskReference generates a client-facing task reference in the
// format CV-XXXX-XXXX
func GenerateTaskReference() (string, error) {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	hex := hex.EncodeToString(bytes)
	return fmt.Sprintf("CV-%s-%s",
		hex[0:4],
		hex[4:8],
	), nil
}
