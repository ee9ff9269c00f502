package jwt

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goSecurity/failure"
)

// StatusError is the status field of every error result.
const StatusError = "error"

// Result holds the outcome of Encode or Decode. Exactly one of Token/Claims or
// Err is set.
type Result struct {
	Token  string  `json:"token,omitempty"`
	Claims *Claims `json:"claims,omitempty"`
	Err    *Error  `json:"error,omitempty"`
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Err == nil
}

// Error is the uniform failure shape.
type Error struct {
	Code    int          `json:"code"`
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Kind    failure.Kind `json:"-"`

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the classified cause so errors.Is works against failure and
// golang-jwt sentinels.
func (e *Error) Unwrap() error {
	return e.cause
}

// Messages reported for well-known conditions.
const (
	MsgTokenMissing       = "The JWT does not exist"
	MsgPrivateKeyMissing  = "The privateKey has not been defined"
	MsgPublicKeyMissing   = "The publicKey has not been defined"
	MsgExpired            = "Expired token"
	MsgNotYetValid        = "Cannot handle token prior to its validity window"
	MsgMalformed          = "Malformed token"
	MsgSignatureInvalid   = "Signature verification failed"
	MsgIssuerAudience     = "Token issuer or audience is not accepted"
	MsgClaimMissing       = "Token is missing a required claim"
	MsgInvalidClaims      = "Token claims are invalid"
	MsgUnverifiable       = "Token could not be verified"
	MsgInvalidSigningKey  = "The signing key is invalid for the configured algorithm"
	MsgUnsupportedAlgName = "The signing algorithm is not supported"
)

func codeFor(k failure.Kind) int {
	switch k {
	case failure.KindCryptographic, failure.KindTokenValidity:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func newError(err error) *Error {
	k := failure.KindOf(err)
	if k == failure.KindUnknown {
		k = failure.KindCryptographic
	}
	return &Error{
		Code:    codeFor(k),
		Status:  StatusError,
		Message: failure.Message(err),
		Kind:    k,
		cause:   err,
	}
}

var validityRules = []struct {
	target  error
	message string
}{
	{jwt.ErrTokenExpired, MsgExpired},
	{jwt.ErrTokenNotValidYet, MsgNotYetValid},
	{jwt.ErrTokenUsedBeforeIssued, MsgNotYetValid},
	{jwt.ErrTokenMalformed, MsgMalformed},
	{jwt.ErrTokenInvalidIssuer, MsgIssuerAudience},
	{jwt.ErrTokenInvalidAudience, MsgIssuerAudience},
	{jwt.ErrTokenRequiredClaimMissing, MsgClaimMissing},
	{jwt.ErrTokenInvalidClaims, MsgInvalidClaims},
}

var keyRules = []error{
	jwt.ErrInvalidKey, jwt.ErrInvalidKeyType, jwt.ErrHashUnavailable,
	jwt.ErrKeyMustBePEMEncoded,
	jwt.ErrNotRSAPrivateKey, jwt.ErrNotRSAPublicKey,
	jwt.ErrNotECPrivateKey, jwt.ErrNotECPublicKey,
	jwt.ErrNotEdPrivateKey, jwt.ErrNotEdPublicKey,
	ErrMaterialMismatch, ErrVerifyOnly,
}

// classify maps any error from the signing layer onto a failure kind. Errors
// that are already classified keep their kind.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if failure.KindOf(err) != failure.KindUnknown {
		return err
	}
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return failure.Wrapf(failure.KindCryptographic, op, err, "%s", MsgSignatureInvalid)
	}
	for _, k := range keyRules {
		if errors.Is(err, k) {
			return failure.Wrapf(failure.KindConfiguration, op, err, "%s", MsgInvalidSigningKey)
		}
	}
	for _, r := range validityRules {
		if errors.Is(err, r.target) {
			return failure.Wrapf(failure.KindTokenValidity, op, err, "%s", r.message)
		}
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return failure.Wrapf(failure.KindCryptographic, op, err, "%s", MsgUnverifiable)
	}
	return failure.Wrapf(failure.KindCryptographic, op, err, "%s", err.Error())
}

func errorResult(op string, err error) Result {
	return Result{Err: newError(classify(op, err))}
}
