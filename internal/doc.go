// Package internal contains helpers that are private to goSecurity, mainly secure
// random generation for keys, ivs, and token ids.
//
// # Sub-packages
//
//   - modes: AES modes of operation missing from crypto/cipher
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSecurity API.
package internal
