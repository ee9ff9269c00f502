package rsa

import (
	"context"
	"crypto/rand"
	stdrsa "crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-logr/logr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrEthical07/goSecurity/bag"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/keystore"
	"github.com/MrEthical07/goSecurity/metrics"
)

// Manager owns one RSA key pair and its pending results.
type Manager struct {
	settings Settings
	store    keystore.Store
	public   *stdrsa.PublicKey
	private  *stdrsa.PrivateKey
	values   *bag.Bag

	log     logr.Logger
	metrics *metrics.Metrics
}

// New returns a Manager with DefaultSettings and a FileStore.
func New(opts ...Option) *Manager {
	m := &Manager{
		settings: DefaultSettings(),
		store:    keystore.FileStore{},
		values:   bag.New(),
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config merges s into the current settings; empty fields are ignored. Cached
// handles are kept. On error nothing changes.
func (m *Manager) Config(s Settings) error {
	const op = "rsa.config"
	next := m.settings.merge(s)
	if next.Bits < MinBits {
		return failure.Wrapf(failure.KindConfiguration, op, ErrWeakKey, "%d bits, need at least %d", next.Bits, MinBits)
	}
	if _, ok := digestFunc(next.Digest); !ok {
		return failure.Wrapf(failure.KindConfiguration, op, ErrUnsupportedDigest, "digest %q", next.Digest)
	}
	m.settings = next
	return nil
}

// Settings returns the effective configuration.
func (m *Manager) Settings() Settings {
	return m.settings
}

// Path returns the storage directory used by Init.
func (m *Manager) Path() string {
	return m.settings.URLPath
}

// SetPath changes the storage directory. Already loaded handles stay cached.
func (m *Manager) SetPath(path string) {
	m.settings.URLPath = path
}

// Create generates a new key pair, writes public.key and private.key under
// path (the configured directory when path is empty), and caches both handles.
func (m *Manager) Create(ctx context.Context, path string) error {
	const op = "rsa.create"
	err := m.create(ctx, op, path)
	m.metrics.Outcome(err, metrics.RSACreateSuccess, metrics.RSACreateFailure)
	if err != nil {
		m.log.Error(err, "key pair creation failed")
	}
	return err
}

func (m *Manager) create(ctx context.Context, op, path string) error {
	if path == "" {
		path = m.settings.URLPath
	}
	key, err := stdrsa.GenerateKey(rand.Reader, m.settings.Bits)
	if err != nil {
		return failure.Wrapf(failure.KindCryptographic, op, err, "generate %d-bit key", m.settings.Bits)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return failure.Wrapf(failure.KindCryptographic, op, err, "marshal public key")
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return failure.Wrapf(failure.KindCryptographic, op, err, "marshal private key")
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

	// A public key without its private half is never left behind.
	if err := m.store.Write(ctx, path, PrivateKeyFile, privPEM, true); err != nil {
		return failure.Wrapf(failure.KindIO, op, err, "write %s", PrivateKeyFile)
	}
	if err := m.store.Write(ctx, path, PublicKeyFile, pubPEM, false); err != nil {
		return failure.Wrapf(failure.KindIO, op, err, "write %s", PublicKeyFile)
	}

	m.public = &key.PublicKey
	m.private = key
	m.log.V(1).Info("key pair created", "path", path, "bits", m.settings.Bits)
	return nil
}

// Init loads any handle that is not cached yet. Calling it again is a no-op.
func (m *Manager) Init(ctx context.Context) error {
	const op = "rsa.init"
	if m.public != nil && m.private != nil {
		return nil
	}
	err := m.loadPublic(ctx, op)
	if err == nil {
		err = m.loadPrivate(ctx, op)
	}
	m.metrics.Outcome(err, metrics.RSAInitSuccess, metrics.RSAInitFailure)
	if err != nil {
		m.log.Error(err, "key load failed", "path", m.settings.URLPath)
	}
	return err
}

func (m *Manager) read(ctx context.Context, op, name string) ([]byte, error) {
	data, err := m.store.Read(ctx, m.settings.URLPath, name)
	if err != nil {
		return nil, failure.Wrapf(failure.KindIO, op, err, "read %s", name)
	}
	return data, nil
}

func (m *Manager) loadPublic(ctx context.Context, op string) error {
	if m.public != nil {
		return nil
	}
	data, err := m.read(ctx, op, PublicKeyFile)
	if err != nil {
		return err
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return failure.Wrapf(failure.KindConfiguration, op, err, "parse %s", PublicKeyFile)
	}
	m.public = key
	m.log.V(1).Info("public key loaded", "path", m.settings.URLPath)
	return nil
}

func (m *Manager) loadPrivate(ctx context.Context, op string) error {
	if m.private != nil {
		return nil
	}
	data, err := m.read(ctx, op, PrivateKeyFile)
	if err != nil {
		return err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return failure.Wrapf(failure.KindConfiguration, op, err, "parse %s", PrivateKeyFile)
	}
	m.private = key
	m.log.V(1).Info("private key loaded", "path", m.settings.URLPath)
	return nil
}

// PublicKey returns the public handle, loading it on first use.
func (m *Manager) PublicKey(ctx context.Context) (*stdrsa.PublicKey, error) {
	if err := m.loadPublic(ctx, "rsa.public_key"); err != nil {
		return nil, err
	}
	return m.public, nil
}

// PrivateKey returns the private handle, loading it on first use. The result
// is a crypto.Signer suitable for jwt.PrivateKey.
func (m *Manager) PrivateKey(ctx context.Context) (*stdrsa.PrivateKey, error) {
	if err := m.loadPrivate(ctx, "rsa.private_key"); err != nil {
		return nil, err
	}
	return m.private, nil
}

// Encode encrypts value with RSA-OAEP under the configured digest and stores the
// base64 ciphertext under key.
func (m *Manager) Encode(ctx context.Context, key, value string) error {
	const op = "rsa.encode"
	err := m.encode(ctx, op, key, value)
	m.metrics.Outcome(err, metrics.RSAEncodeSuccess, metrics.RSAEncodeFailure)
	if err != nil {
		m.log.Error(err, "encode failed", "key", key)
	}
	return err
}

func (m *Manager) encode(ctx context.Context, op, key, value string) error {
	if err := m.loadPublic(ctx, op); err != nil {
		return err
	}
	newHash, _ := digestFunc(m.settings.Digest)
	ct, err := stdrsa.EncryptOAEP(newHash(), rand.Reader, m.public, []byte(value), nil)
	if err != nil {
		return failure.Wrapf(failure.KindCryptographic, op, err, "encrypt %q", key)
	}
	m.values.Set(key, base64.StdEncoding.EncodeToString(ct))
	m.log.V(1).Info("encoded value", "key", key)
	return nil
}

// Decode decrypts every row with the private key. A failing row aborts the
// batch and nothing is stored.
func (m *Manager) Decode(ctx context.Context, rows *bag.Bag) error {
	const op = "rsa.decode"
	err := m.decode(ctx, op, rows)
	m.metrics.Outcome(err, metrics.RSADecodeSuccess, metrics.RSADecodeFailure)
	if err != nil {
		m.log.Error(err, "decode failed")
	}
	return err
}

func (m *Manager) decode(ctx context.Context, op string, rows *bag.Bag) error {
	if err := m.loadPrivate(ctx, op); err != nil {
		return err
	}
	newHash, _ := digestFunc(m.settings.Digest)
	staged := bag.New()
	err := rows.Each(func(key, value string) error {
		ct, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return failure.Wrapf(failure.KindCryptographic, op, err, "decode base64 %q", key)
		}
		pt, err := stdrsa.DecryptOAEP(newHash(), nil, m.private, ct, nil)
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
		m.values.Set(key, value)
		return nil
	})
	m.log.V(1).Info("decoded batch", "rows", staged.Len())
	return nil
}

// Get returns the accumulated bag and starts a new empty one.
func (m *Manager) Get() *bag.Bag {
	out := m.values
	m.values = bag.New()
	return out
}

// ToObject decodes the accumulated bag into out without consuming it.
func (m *Manager) ToObject(out any) error {
	if err := m.values.Decode(out); err != nil {
		return failure.Wrapf(failure.KindConfiguration, "rsa.to_object", err, "map values")
	}
	return nil
}

// KeyID derives a stable identifier for the public key: a name-based UUID over
// its PKIX DER encoding.
func (m *Manager) KeyID(ctx context.Context) (string, error) {
	pub, err := m.PublicKey(ctx)
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", failure.Wrapf(failure.KindCryptographic, "rsa.key_id", err, "marshal public key")
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, der).String(), nil
}

// JWKS publishes the public key as a single-entry RS256 signing key set.
func (m *Manager) JWKS(ctx context.Context) (jose.JSONWebKeySet, error) {
	pub, err := m.PublicKey(ctx)
	if err != nil {
		return jose.JSONWebKeySet{}, err
	}
	kid, err := m.KeyID(ctx)
	if err != nil {
		return jose.JSONWebKeySet{}, err
	}
	return jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
		Key:       pub,
		KeyID:     kid,
		Algorithm: "RS256",
		Use:       "sig",
	}}}, nil
}

// Reset restores DefaultSettings and drops handles and pending results.
func (m *Manager) Reset() {
	m.settings = DefaultSettings()
	m.public = nil
	m.private = nil
	m.values = bag.New()
}
