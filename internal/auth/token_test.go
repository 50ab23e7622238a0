package auth

import (
	"strings"
	"testing"
)

func TestGenerateTokenShape(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// 32 bytes of entropy encode to 43 unpadded base64 characters.
	if len(token) != 43 {
		t.Errorf("unexpected token length %d: %q", len(token), token)
	}
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("token must be URL-safe without padding: %q", token)
	}
}

func TestGenerateTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}
