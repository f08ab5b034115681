// Package credential derives and verifies stored password representations.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/identity-server/internal/model"
)

const (
	saltLen = 16
	keyLen  = 32
)

var (
	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrInvalidHash is returned when an encoded hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid hash format")
)

var _ model.PasswordHasher = (*Argon2id)(nil)

// Params are argon2id cost parameters.
type Params struct {
	Time   uint32
	MemKiB uint32
	Par    uint8
}

// Argon2id hashes passwords into PHC strings:
// $argon2id$v=19$m=<mem>,t=<time>,p=<par>$<salt>$<key>
type Argon2id struct {
	params Params
}

// NewArgon2id creates a hasher with the given cost parameters.
func NewArgon2id(params Params) (*Argon2id, error) {
	if params.Time == 0 || params.MemKiB == 0 || params.Par == 0 {
		return nil, fmt.Errorf("argon2id params must be positive: %+v", params)
	}
	return &Argon2id{params: params}, nil
}

// Hash derives a salted argon2id representation of password.
func (h *Argon2id) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemKiB, h.params.Par, keyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemKiB,
		h.params.Time,
		h.params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters embedded in encoded and
// compares in constant time.
func (h *Argon2id) Verify(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return false, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if memory == 0 || time == 0 || threads == 0 || threads > 255 {
		return false, fmt.Errorf("%w: parameters out of range", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if len(expected) == 0 || len(expected) > 1024 {
		return false, fmt.Errorf("%w: key length %d", ErrInvalidHash, len(expected))
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(expected)))

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
