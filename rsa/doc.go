// Package rsa manages an RSA key pair: generation, PEM persistence through a
// keystore.Store, lazy cached loading, and OAEP encode/decode batches that share
// the consume-once bag used by the symmetric cipher.
//
// Handles are loaded at most once per Manager. Only [Manager.Create] and
// [Manager.Reset] replace them.
//
// Manager values are not safe for concurrent use.
package rsa
