package goSecurity

import (
	"errors"

	"github.com/MrEthical07/goSecurity/aes"
	"github.com/MrEthical07/goSecurity/catalog"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/jwt"
	"github.com/MrEthical07/goSecurity/keystore"
	"github.com/MrEthical07/goSecurity/rsa"
)

// Failure kinds. Every classified error matches exactly one of these.
var (
	ErrConfiguration = failure.ErrConfiguration
	ErrCryptographic = failure.ErrCryptographic
	ErrTokenValidity = failure.ErrTokenValidity
	ErrIO            = failure.ErrIO
)

// Component causes, for callers that need more than the kind.
var (
	ErrUnsupportedMethod    = catalog.ErrUnsupportedMethod
	ErrMissingKey           = aes.ErrMissingKey
	ErrMissingIV            = aes.ErrMissingIV
	ErrKeyLength            = aes.ErrKeyLength
	ErrIVLength             = aes.ErrIVLength
	ErrUnsupportedDigest    = rsa.ErrUnsupportedDigest
	ErrWeakKey              = rsa.ErrWeakKey
	ErrKeyNotFound          = keystore.ErrNotFound
	ErrRedisUnavailable     = keystore.ErrRedisUnavailable
	ErrUnsupportedAlgorithm = jwt.ErrUnsupportedAlgorithm
	ErrTokenMissing         = jwt.ErrTokenMissing
	ErrPrivateKeyMissing    = jwt.ErrPrivateKeyMissing
	ErrPublicKeyMissing     = jwt.ErrPublicKeyMissing
)

var (
	ErrBuilderUsed      = errors.New("builder already used")
	ErrUnknownBackend   = errors.New("unknown key store backend")
	ErrUnknownAlgorithm = errors.New("unknown password algorithm")
	ErrNoKeyManager     = errors.New("nil rsa key manager")
)
