// Package modes implements the AES modes of operation that crypto/cipher does not ship:
// ECB, 1-bit and 8-bit CFB, RFC 3394/5649 key wrap (forward and inverse), and RFC 5297
// SIV, plus PKCS#7 padding for the block modes.
//
// Everything here operates on a caller-supplied cipher.Block and never allocates keys.
package modes
