package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// TokenTTL is how long an admin session token stays valid after login.
// Validity is always computed from the stored expiry at check time; nothing
// sweeps expired rows in the background.
const TokenTTL = 24 * time.Hour

// GenerateToken creates an opaque session token: 32 bytes (256 bits) from
// the OS CSPRNG, URL-safe base64 without padding. Unpredictability plus the
// UNIQUE constraint on the token column make collisions between live tokens
// a non-concern.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
