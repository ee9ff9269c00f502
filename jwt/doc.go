// Package jwt issues and verifies signed tokens whose payload carries an arbitrary
// data map next to the standard iss, aud, jti, iat, nbf, and exp claims.
//
// Neither [Issuer.Encode] nor [Issuer.Decode] returns a Go error. Both return a
// [Result] that holds either the success value or a uniform [Error] carrying an
// HTTP-style code, the status "error", and a caller-facing message. Failures
// from the signing library are classified by [failure.Kind] rather than by
// concrete error type.
//
// Signing material is injected: a shared secret, a crypto.Signer such as the
// handle returned by rsa.Manager.PrivateKey, a public key, or PEM bytes.
package jwt
