package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argonParams controls the computational cost of hashing an admin password.
// A balance between security and server performance.
type argonParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// DefaultParams provides a good starting point for a web application. Review
// periodically; cost parameters may need to grow with available hardware.
var DefaultParams = &argonParams{
	memory:      64 * 1024, // 64 MB
	iterations:  3,
	parallelism: 2,
	saltLength:  16,
	keyLength:   32,
}

// HashPassword takes a plain-text password and returns a securely hashed
// string in the standard encoded form:
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
// Parameters travel with the hash, so they can be raised later without
// breaking existing rows.
func HashPassword(password string) (string, error) {
	p := DefaultParams

	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.parallelism, b64Salt, b64Hash), nil
}

// CheckPasswordHash compares a plain-text password with a stored hash. It
// re-computes the hash with the parameters and salt embedded in the stored
// string and compares in constant time to rule out timing attacks.
func CheckPasswordHash(password, storedHash string) bool {
	p, salt, hash, err := decodeHash(storedHash)
	if err != nil {
		// A malformed stored hash can't possibly match.
		return false
	}

	otherHash := argon2.IDKey([]byte(password), salt, p.iterations, p.memory, p.parallelism, p.keyLength)

	return subtle.ConstantTimeCompare(hash, otherHash) == 1
}

// decodeHash parses the encoded hash string back into its components.
func decodeHash(fullHash string) (p *argonParams, salt, hash []byte, err error) {
	vals := strings.Split(fullHash, "$")
	if len(vals) != 6 {
		return nil, nil, nil, errors.New("invalid stored hash format")
	}

	if vals[1] != "argon2id" {
		return nil, nil, nil, errors.New("unsupported hashing algorithm")
	}

	p = &argonParams{}
	_, err = fmt.Sscanf(vals[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism)
	if err != nil {
		return nil, nil, nil, err
	}

	salt, err = base64.RawStdEncoding.DecodeString(vals[4])
	if err != nil {
		return nil, nil, nil, err
	}
	p.saltLength = uint32(len(salt))

	hash, err = base64.RawStdEncoding.DecodeString(vals[5])
	if err != nil {
		return nil, nil, nil, err
	}
	p.keyLength = uint32(len(hash))

	return p, salt, hash, nil
}
