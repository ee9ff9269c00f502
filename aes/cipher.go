package aes

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/go-logr/logr"

	"github.com/MrEthical07/goSecurity/bag"
	"github.com/MrEthical07/goSecurity/catalog"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/metrics"
)

// Cipher is a symmetric encryption session.
type Cipher struct {
	settings   Settings
	method     catalog.Method
	key        []byte
	iv         []byte
	configured bool
	values     *bag.Bag

	log     logr.Logger
	metrics *metrics.Metrics
}

// New returns an unconfigured Cipher.
func New(opts ...Option) *Cipher {
	c := &Cipher{
		values: bag.New(),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config merges s into the current settings and validates the result. Empty
// fields in s keep their current value, so a later call cannot clear a key.
// The key is always required; the iv is required unless the method takes none.
// On error the previous configuration is kept.
func (c *Cipher) Config(s Settings) error {
	const op = "aes.config"

	next := c.settings.merge(s)
	if next.Method == "" {
		next.Method = catalog.Default
	}
	m, err := catalog.Resolve(next.Method)
	if err != nil {
		return err
	}
	next.Method = m.Name

	if next.Key == "" {
		return failure.Wrap(failure.KindConfiguration, op, ErrMissingKey)
	}
	if next.IV == "" && m.IVLen > 0 {
		return failure.Wrap(failure.KindConfiguration, op, ErrMissingIV)
	}

	key, err := hex.DecodeString(next.Key)
	if err != nil {
		return failure.Wrapf(failure.KindConfiguration, op, ErrInvalidHex, "decode key: %v", err)
	}
	iv, err := hex.DecodeString(next.IV)
	if err != nil {
		return failure.Wrapf(failure.KindConfiguration, op, ErrInvalidHex, "decode iv: %v", err)
	}

	c.settings = next
	c.method = m
	c.key = key
	c.iv = iv
	c.configured = true
	c.log.V(1).Info("cipher configured", "method", m.Name)
	return nil
}

// Settings returns the effective configuration.
func (c *Cipher) Settings() Settings {
	return c.settings
}

// Method returns the resolved catalog entry. It is the zero Method before Config.
func (c *Cipher) Method() catalog.Method {
	return c.method
}

// Encode encrypts value and stores its base64 ciphertext under key.
func (c *Cipher) Encode(key, value string) error {
	const op = "aes.encode"
	err := c.encode(op, key, value)
	c.metrics.Outcome(err, metrics.AESEncodeSuccess, metrics.AESEncodeFailure)
	if err != nil {
		c.log.Error(err, "encode failed", "key", key)
	}
	return err
}

func (c *Cipher) encode(op, key, value string) error {
	if !c.configured {
		return failure.Wrap(failure.KindConfiguration, op, ErrNotConfigured)
	}
	ct, err := seal(c.method, c.key, c.iv, []byte(value))
	if err != nil {
		return failure.Wrapf(failure.KindCryptographic, op, err, "encrypt %q", key)
	}
	c.values.Set(key, base64.StdEncoding.EncodeToString(ct))
	c.log.V(1).Info("encoded value", "method", c.method.Name, "key", key)
	return nil
}

// Decode decrypts every row and adds the plaintexts to the bag. Rows are
// processed in order; if any row fails nothing is stored and the error names it.
func (c *Cipher) Decode(rows *bag.Bag) error {
	const op = "aes.decode"
	err := c.decode(op, rows)
	c.metrics.Outcome(err, metrics.AESDecodeSuccess, metrics.AESDecodeFailure)
	if err != nil {
		c.log.Error(err, "decode failed")
	}
	return err
}

func (c *Cipher) decode(op string, rows *bag.Bag) error {
	if !c.configured {
		return failure.Wrap(failure.KindConfiguration, op, ErrNotConfigured)
	}
	staged := bag.New()
	err := rows.Each(func(key, value string) error {
		ct, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return failure.Wrapf(failure.KindCryptographic, op, err, "decode base64 %q", key)
		}
		pt, err := open(c.method, c.key, c.iv, ct)
		if err != nil {
			return failure.Wrapf(failure.KindCryptographic, op, err, "decrypt %q", key)
		}
		staged.Set(key, string(pt))
		return nil
	})
	if err != nil {
		return err
	}
	_ = staged.Each(func(key, value string) error {
		c.values.Set(key, value)
		return nil
	})
	c.log.V(1).Info("decoded batch", "method", c.method.Name, "rows", staged.Len())
	return nil
}

// Get returns the accumulated bag and starts a new empty one. The
// configuration is untouched.
func (c *Cipher) Get() *bag.Bag {
	out := c.values
	c.values = bag.New()
	return out
}

// ToObject decodes the accumulated bag into out, a pointer to a struct with
// `mapstructure` tags or to a map. It does not consume the bag.
func (c *Cipher) ToObject(out any) error {
	if err := c.values.Decode(out); err != nil {
		return failure.Wrapf(failure.KindConfiguration, "aes.to_object", err, "map values")
	}
	return nil
}

// Reset drops configuration, key material, and pending results.
func (c *Cipher) Reset() {
	for i := range c.key {
		c.key[i] = 0
	}
	c.settings = Settings{}
	c.method = catalog.Method{}
	c.key = nil
	c.iv = nil
	c.configured = false
	c.values = bag.New()
}
