// Package aes implements the symmetric cipher session: configure a method with hex
// key material, encode values one at a time into an ordered bag, decode whole
// batches, and consume the results.
//
// A Cipher keeps its configuration across [Cipher.Get] calls so the same key material
// can serve repeated encode/get cycles. Only [Cipher.Reset] clears it.
//
// Cipher values are not safe for concurrent use.
package aes
