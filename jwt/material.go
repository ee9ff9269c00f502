package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMaterialMismatch is returned when material cannot serve the configured algorithm.
	ErrMaterialMismatch = errors.New("signing material does not fit the algorithm")
	// ErrVerifyOnly is returned when verification-only material is used to sign.
	ErrVerifyOnly = errors.New("signing material cannot sign")
)

// Material is signing or verification key material. Build it with Secret,
// PrivateKey, PublicKey, or PEM.
type Material interface {
	signingKey(m jwt.SigningMethod) (any, error)
	verifyingKey(m jwt.SigningMethod) (any, error)
}

type family int

const (
	familyHMAC family = iota
	familyRSA
	familyECDSA
	familyEdDSA
)

func familyOf(m jwt.SigningMethod) family {
	switch m.(type) {
	case *jwt.SigningMethodHMAC:
		return familyHMAC
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		return familyRSA
	case *jwt.SigningMethodECDSA:
		return familyECDSA
	default:
		return familyEdDSA
	}
}

func mismatch(what string, m jwt.SigningMethod) error {
	return fmt.Errorf("%w: %s for %s", ErrMaterialMismatch, what, m.Alg())
}

type secret []byte

// Secret is a shared HMAC key used both to sign and to verify.
func Secret(key []byte) Material {
	if len(key) == 0 {
		return nil
	}
	return secret(append([]byte(nil), key...))
}

func (s secret) signingKey(m jwt.SigningMethod) (any, error) {
	if familyOf(m) != familyHMAC {
		return nil, mismatch("shared secret", m)
	}
	return []byte(s), nil
}

func (s secret) verifyingKey(m jwt.SigningMethod) (any, error) {
	return s.signingKey(m)
}

type signer struct{ crypto.Signer }

// PrivateKey wraps an RSA, ECDSA, or Ed25519 private key. It can also verify
// through its public half.
func PrivateKey(key crypto.Signer) Material {
	if key == nil {
		return nil
	}
	return signer{key}
}

func (s signer) signingKey(m jwt.SigningMethod) (any, error) {
	switch k := s.Signer.(type) {
	case *rsa.PrivateKey:
		if familyOf(m) == familyRSA {
			return k, nil
		}
	case *ecdsa.PrivateKey:
		if familyOf(m) == familyECDSA {
			return k, nil
		}
	case ed25519.PrivateKey:
		if familyOf(m) == familyEdDSA {
			return k, nil
		}
	case *ed25519.PrivateKey:
		if familyOf(m) == familyEdDSA {
			return *k, nil
		}
	}
	return nil, mismatch(fmt.Sprintf("%T", s.Signer), m)
}

func (s signer) verifyingKey(m jwt.SigningMethod) (any, error) {
	return publicKey{s.Signer.Public()}.verifyingKey(m)
}

type publicKey struct{ crypto.PublicKey }

// PublicKey wraps an RSA, ECDSA, or Ed25519 public key for verification.
func PublicKey(key crypto.PublicKey) Material {
	if key == nil {
		return nil
	}
	return publicKey{key}
}

func (p publicKey) signingKey(jwt.SigningMethod) (any, error) {
	return nil, ErrVerifyOnly
}

func (p publicKey) verifyingKey(m jwt.SigningMethod) (any, error) {
	switch k := p.PublicKey.(type) {
	case *rsa.PublicKey:
		if familyOf(m) == familyRSA {
			return k, nil
		}
	case *ecdsa.PublicKey:
		if familyOf(m) == familyECDSA {
			return k, nil
		}
	case ed25519.PublicKey:
		if familyOf(m) == familyEdDSA {
			return k, nil
		}
	}
	return nil, mismatch(fmt.Sprintf("%T", p.PublicKey), m)
}

type pemBytes []byte

// PEM holds PEM-encoded key material parsed on use for the configured
// algorithm family. A private key PEM can sign and verify; a public key PEM
// can only verify.
func PEM(data []byte) Material {
	return pemBytes(append([]byte(nil), data...))
}

func (p pemBytes) private(m jwt.SigningMethod) (crypto.Signer, error) {
	switch familyOf(m) {
	case familyRSA:
		return jwt.ParseRSAPrivateKeyFromPEM(p)
	case familyECDSA:
		return jwt.ParseECPrivateKeyFromPEM(p)
	case familyEdDSA:
		k, err := jwt.ParseEdPrivateKeyFromPEM(p)
		if err != nil {
			return nil, err
		}
		s, ok := k.(crypto.Signer)
		if !ok {
			return nil, jwt.ErrNotEdPrivateKey
		}
		return s, nil
	default:
		return nil, mismatch("PEM key", m)
	}
}

func (p pemBytes) public(m jwt.SigningMethod) (crypto.PublicKey, error) {
	switch familyOf(m) {
	case familyRSA:
		return jwt.ParseRSAPublicKeyFromPEM(p)
	case familyECDSA:
		return jwt.ParseECPublicKeyFromPEM(p)
	case familyEdDSA:
		return jwt.ParseEdPublicKeyFromPEM(p)
	default:
		return nil, mismatch("PEM key", m)
	}
}

func (p pemBytes) signingKey(m jwt.SigningMethod) (any, error) {
	k, err := p.private(m)
	if err != nil {
		return nil, err
	}
	return signer{k}.signingKey(m)
}

func (p pemBytes) verifyingKey(m jwt.SigningMethod) (any, error) {
	if pub, err := p.public(m); err == nil {
		return publicKey{pub}.verifyingKey(m)
	}
	k, err := p.private(m)
	if err != nil {
		return nil, err
	}
	return signer{k}.verifyingKey(m)
}
