package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	argon2ID              = "argon2id"

	// DefaultMaxPasswordBytes caps input when Argon2Config.MaxPasswordBytes is zero.
	DefaultMaxPasswordBytes = 1024
)

// Argon2Config holds argon2id cost parameters. Memory is in KiB.
type Argon2Config struct {
	Memory           uint32
	Time             uint32
	Parallelism      uint8
	SaltLength       uint32
	KeyLength        uint32
	MaxPasswordBytes int
}

// DefaultArgon2Config returns the RFC 9106 second recommended option.
func DefaultArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2 is an argon2id hasher. The zero value can only verify.
type Argon2 struct {
	config Argon2Config
}

type phc struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

func NewArgon2(cfg Argon2Config) (*Argon2, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.MaxPasswordBytes == 0 {
		cfg.MaxPasswordBytes = DefaultMaxPasswordBytes
	}
	return &Argon2{config: cfg}, nil
}

func (a *Argon2) maxBytes() int {
	if a.config.MaxPasswordBytes > 0 {
		return a.config.MaxPasswordBytes
	}
	return DefaultMaxPasswordBytes
}

// Hash uses the raw password bytes; no Unicode normalization is applied.
func (a *Argon2) Hash(password string) (string, error) {
	if a.config.KeyLength == 0 {
		return "", fmt.Errorf("%w: argon2 hasher not configured", ErrInvalidParameter)
	}
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > a.maxBytes() {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, a.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, a.config.Time, a.config.Memory, a.config.Parallelism, a.config.KeyLength)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2ID,
		argon2.Version,
		a.config.Memory,
		a.config.Time,
		a.config.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *Argon2) Verify(password, encoded string) (bool, error) {
	if len(password) > a.maxBytes() {
		return false, ErrPasswordTooLong
	}
	p, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.parallelism, uint32(len(p.hash)))
	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

// NeedsUpgrade reports whether encoded used weaker parameters than a.
func (a *Argon2) NeedsUpgrade(encoded string) (bool, error) {
	p, err := parsePHC(encoded)
	if err != nil {
		return false, err
	}
	return a.config.Memory > p.memory ||
		a.config.Time > p.time ||
		a.config.Parallelism > p.parallelism ||
		a.config.KeyLength != uint32(len(p.hash)), nil
}

func invalidHash(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidHash, reason)
}

// decodeB64 accepts both padded and unpadded standard base64.
func decodeB64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

func parsePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, invalidHash("not a PHC string")
	}
	if parts[1] != argon2ID {
		return nil, ErrUnknownHash
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, invalidHash("missing version")
	}
	v, err := strconv.Atoi(version)
	if err != nil || v != argon2.Version {
		return nil, invalidHash("unsupported version " + version)
	}

	p, err := parseParams(parts[3])
	if err != nil {
		return nil, err
	}

	if p.salt, err = decodeB64(parts[4]); err != nil || len(p.salt) < int(minSaltLength) {
		return nil, invalidHash("bad salt")
	}
	if p.hash, err = decodeB64(parts[5]); err != nil || len(p.hash) == 0 {
		return nil, invalidHash("bad digest")
	}
	return p, nil
}

func parseParams(part string) (*phc, error) {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return nil, invalidHash("expected m, t and p parameters")
	}

	var (
		p    phc
		seen = map[string]bool{}
	)
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || seen[name] {
			return nil, invalidHash("bad parameter " + pair)
		}
		seen[name] = true

		switch name {
		case "m":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil || n < uint64(minMemoryKB) {
				return nil, invalidHash("bad memory parameter")
			}
			p.memory = uint32(n)
		case "t":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil || n < uint64(minTimeCost) {
				return nil, invalidHash("bad time parameter")
			}
			p.time = uint32(n)
		case "p":
			n, err := strconv.ParseUint(value, 10, 8)
			if err != nil || n < uint64(minParallelism) {
				return nil, invalidHash("bad parallelism parameter")
			}
			p.parallelism = uint8(n)
		default:
			return nil, invalidHash("unknown parameter " + name)
		}
	}
	return &p, nil
}

func (c Argon2Config) validate() error {
	switch {
	case c.Memory < minMemoryKB:
		return fmt.Errorf("%w: memory must be >= %d KiB", ErrInvalidParameter, minMemoryKB)
	case c.Time < minTimeCost:
		return fmt.Errorf("%w: time must be >= %d", ErrInvalidParameter, minTimeCost)
	case c.Parallelism < minParallelism:
		return fmt.Errorf("%w: parallelism must be >= %d", ErrInvalidParameter, minParallelism)
	case c.SaltLength < minSaltLength:
		return fmt.Errorf("%w: salt length must be >= %d", ErrInvalidParameter, minSaltLength)
	case c.KeyLength < minKeyLength:
		return fmt.Errorf("%w: key length must be >= %d", ErrInvalidParameter, minKeyLength)
	case c.MaxPasswordBytes < 0:
		return fmt.Errorf("%w: negative max password bytes", ErrInvalidParameter)
	}
	return nil
}
