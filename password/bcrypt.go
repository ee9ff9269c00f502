package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used by PHP's password_hash.
const DefaultBcryptCost = 10

// bcrypt ignores everything past 72 bytes; longer input is refused
// instead of silently truncated.
const maxBcryptBytes = 72

// Bcrypt hashes with the given cost. A zero Cost means DefaultBcryptCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) cost() (int, error) {
	if b.Cost == 0 {
		return DefaultBcryptCost, nil
	}
	if b.Cost < bcrypt.MinCost || b.Cost > bcrypt.MaxCost {
		return 0, fmt.Errorf("%w: bcrypt cost %d outside [%d, %d]", ErrInvalidParameter, b.Cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return b.Cost, nil
}

// Validate reports a cost outside bcrypt's accepted range.
func (b Bcrypt) Validate() error {
	_, err := b.cost()
	return err
}

func (b Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxBcryptBytes {
		return "", ErrPasswordTooLong
	}
	cost, err := b.cost()
	if err != nil {
		return "", err
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports a mismatch as (false, nil); a hash that cannot be parsed
// returns ErrInvalidHash.
func (b Bcrypt) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NeedsUpgrade reports whether encoded was produced with a lower cost.
func (b Bcrypt) NeedsUpgrade(encoded string) (bool, error) {
	want, err := b.cost()
	if err != nil {
		return false, err
	}
	got, err := bcrypt.Cost([]byte(encoded))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return got < want, nil
}
