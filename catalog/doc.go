// Package catalog maps canonical AES cipher-method names to the key and iv lengths the
// engine requires for them.
//
// Names follow OpenSSL conventions ("aes-256-cbc", "aes-128-wrap-pad"). [Resolve] trims
// and lowercases its input before lookup, so " AES-256-CBC " and "aes-256-cbc" resolve to
// the same [Method]. The table is built once at package initialisation and never mutated.
//
// XTS methods take double-length keys (two AES keys of the nominal size) and SIV methods
// do the same for their MAC and CTR halves. There is no 192-bit XTS variant.
package catalog
