// Package password hashes and verifies passwords and computes plain SHA-256
// digests of values.
//
// Two hashers are provided. [Bcrypt] produces modular crypt strings
// ($2a$10$...) and is the default. [Argon2] produces PHC strings:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// [Verify] inspects the stored hash prefix and dispatches to the matching
// hasher, so stores can hold a mix of both formats.
//
// Plaintext passwords are never logged or retained.
package password
