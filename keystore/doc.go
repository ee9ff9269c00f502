// Package keystore persists PEM-encoded key material.
//
// [FileStore] writes one file per key under a directory and is the default.
// [RedisStore] keeps the same layout in Redis so several processes can share a
// key pair without a shared volume.
package keystore
