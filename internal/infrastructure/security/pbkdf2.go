package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/scms-platform/identity-service/internal/domain"
)

const (
	defaultIterations = 260_000
	saltLen           = 16
	keyLen            = 32

	hashMethod = "pbkdf2:sha256"
)

var errMismatch = errors.New("password mismatch")

// PBKDF2Hasher produces salted, iterated SHA-256 hashes in the
// "pbkdf2:sha256:<iterations>$<salt>$<key>" format, so hashes written by the
// previous backend verify unchanged.
type PBKDF2Hasher struct {
	iterations int
}

func NewPBKDF2Hasher(iterations int) *PBKDF2Hasher {
	if iterations <= 0 {
		iterations = defaultIterations
	}
	return &PBKDF2Hasher{iterations: iterations}
}

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domain.ErrHashFailed(errors.New("empty password"))
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", domain.ErrHashFailed(err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s",
		hashMethod, h.iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// Compare recomputes the hash of password with the salt and iteration count
// embedded in stored and compares in constant time. Returns nil on match.
func (h *PBKDF2Hasher) Compare(stored string, password string) error {
	iterations, salt, want, err := parseHash(stored)
	if err != nil {
		return err
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errMismatch
	}
	return nil
}

func parseHash(stored string) (iterations int, salt, key []byte, err error) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return 0, nil, nil, fmt.Errorf("malformed hash: want 3 segments, got %d", len(parts))
	}

	header := parts[0]
	idx := strings.LastIndex(header, ":")
	if idx < 0 || header[:idx] != hashMethod {
		return 0, nil, nil, fmt.Errorf("unsupported hash method %q", header)
	}
	iterations, err = strconv.Atoi(header[idx+1:])
	if err != nil || iterations <= 0 {
		return 0, nil, nil, fmt.Errorf("invalid iteration count in %q", header)
	}

	salt, err = hex.DecodeString(parts[1])
	if err != nil {
		return 0, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, nil, nil, fmt.Errorf("invalid key encoding")
	}
	return iterations, salt, key, nil
}
