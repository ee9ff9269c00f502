package rsa

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"strings"
)

const (
	DefaultPath       = "./storage/keys/"
	DefaultConfigPath = "/etc/ssl/openssl.cnf"
	DefaultBits       = 2048
	DefaultDigest     = "sha256"

	// MinBits is the smallest accepted modulus.
	MinBits = 1024

	PublicKeyFile  = "public.key"
	PrivateKeyFile = "private.key"
)

var (
	ErrUnsupportedDigest = errors.New("unsupported digest algorithm")
	ErrWeakKey           = errors.New("key size below minimum")
)

// Settings is the configuration shape of a Manager. ConfigPath is recorded for
// compatibility with deployments that carry an OpenSSL config location; key
// generation does not read it.
type Settings struct {
	URLPath    string `json:"urlPath"`
	ConfigPath string `json:"rsaConfig"`
	Bits       int    `json:"rsaPrivateKeyBits"`
	Digest     string `json:"rsaDefaultMd"`
}

// DefaultSettings returns the values a new Manager starts from.
func DefaultSettings() Settings {
	return Settings{
		URLPath:    DefaultPath,
		ConfigPath: DefaultConfigPath,
		Bits:       DefaultBits,
		Digest:     DefaultDigest,
	}
}

func (s Settings) merge(next Settings) Settings {
	if next.URLPath != "" {
		s.URLPath = next.URLPath
	}
	if next.ConfigPath != "" {
		s.ConfigPath = next.ConfigPath
	}
	if next.Bits != 0 {
		s.Bits = next.Bits
	}
	if next.Digest != "" {
		s.Digest = strings.ToLower(strings.TrimSpace(next.Digest))
	}
	return s
}

var digests = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha224": sha256.New224,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

func digestFunc(name string) (func() hash.Hash, bool) {
	fn, ok := digests[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}
