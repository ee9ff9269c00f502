package aes

import (
	"encoding/hex"
	"errors"

	"github.com/MrEthical07/goSecurity/catalog"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/internal"
)

const passphraseBytes = 32

var (
	ErrMissingKey    = errors.New("the key is required")
	ErrMissingIV     = errors.New("the iv is required")
	ErrNotConfigured = errors.New("cipher is not configured")
	ErrInvalidHex    = errors.New("key material is not valid hex")
)

// Settings is the configuration shape of a Cipher. Key and IV are hex strings.
// Passphrase is generated alongside the key and carried for callers that
// persist it; it never participates in encryption.
type Settings struct {
	Method     string `json:"method"`
	Key        string `json:"key"`
	IV         string `json:"iv"`
	Passphrase string `json:"passphrase,omitempty"`
}

// merge overlays the non-empty fields of next onto s.
func (s Settings) merge(next Settings) Settings {
	if next.Method != "" {
		s.Method = next.Method
	}
	if next.Key != "" {
		s.Key = next.Key
	}
	if next.IV != "" {
		s.IV = next.IV
	}
	if next.Passphrase != "" {
		s.Passphrase = next.Passphrase
	}
	return s
}

// Generate returns fresh random material sized for method. An empty method
// selects catalog.Default. The result is not applied to any Cipher.
func Generate(method string) (Settings, error) {
	const op = "aes.generate"
	if method == "" {
		method = catalog.Default
	}
	m, err := catalog.Resolve(method)
	if err != nil {
		return Settings{}, err
	}

	key, err := internal.RandomBytes(m.KeyLen)
	if err != nil {
		return Settings{}, failure.Wrapf(failure.KindCryptographic, op, err, "generate key")
	}
	iv, err := internal.RandomBytes(m.IVLen)
	if err != nil {
		return Settings{}, failure.Wrapf(failure.KindCryptographic, op, err, "generate iv")
	}
	if m.Mode == catalog.ModeXTS {
		// The iv doubles as a little-endian sector number; keep it in uint64 range.
		for i := 8; i < len(iv); i++ {
			iv[i] = 0
		}
	}
	pass, err := internal.RandomHex(passphraseBytes)
	if err != nil {
		return Settings{}, failure.Wrapf(failure.KindCryptographic, op, err, "generate passphrase")
	}

	return Settings{
		Method:     m.Name,
		Key:        hex.EncodeToString(key),
		IV:         hex.EncodeToString(iv),
		Passphrase: pass,
	}, nil
}
