package password

import (
	"errors"
	"strings"
)

var (
	ErrEmptyPassword    = errors.New("password: empty password")
	ErrPasswordTooLong  = errors.New("password: password too long")
	ErrUnknownHash      = errors.New("password: unrecognized hash format")
	ErrInvalidHash      = errors.New("password: invalid hash")
	ErrInvalidParameter = errors.New("password: invalid hasher parameter")
)

// Hasher is implemented by [Bcrypt] and [Argon2].
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Default returns a bcrypt hasher at DefaultBcryptCost.
func Default() Hasher {
	return Bcrypt{Cost: DefaultBcryptCost}
}

// Identify returns a hasher able to verify encoded.
func Identify(encoded string) (Hasher, error) {
	switch {
	case strings.HasPrefix(encoded, "$"+argon2ID+"$"):
		return &Argon2{}, nil
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return Bcrypt{}, nil
	default:
		return nil, ErrUnknownHash
	}
}

// Verify checks password against a bcrypt or argon2id hash.
func Verify(password, encoded string) (bool, error) {
	h, err := Identify(encoded)
	if err != nil {
		return false, err
	}
	return h.Verify(password, encoded)
}
