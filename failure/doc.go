// Package failure defines the error taxonomy shared by the cipher, key-manager, and
// token packages.
//
// Every error produced by goSecurity carries a [Kind]. Callers branch on the kind with
// errors.Is against the four sentinels ([ErrConfiguration], [ErrCryptographic],
// [ErrTokenValidity], [ErrIO]) or extract it with [KindOf], never by matching concrete
// library error types.
//
// # What this package must NOT do
//
//   - Import any other goSecurity package.
//   - Embed key material or plaintext in error messages.
package failure
