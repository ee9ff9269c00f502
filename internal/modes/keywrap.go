package modes

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

var (
	// ErrWrapLength is returned when key-wrap input has an unusable length.
	ErrWrapLength = errors.New("invalid key wrap input length")
	// ErrWrapIntegrity is returned when an unwrapped integrity check value does not match.
	ErrWrapIntegrity = errors.New("key wrap integrity check failed")
)

// DefaultWrapIV is the RFC 3394 initial value.
var DefaultWrapIV = []byte{0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6, 0xA6}

// DefaultWrapPadIV is the RFC 5649 alternative initial value prefix.
var DefaultWrapPadIV = []byte{0xA6, 0x59, 0x59, 0xA6}

// Wrapper runs RFC 3394 and RFC 5649 over a block cipher. With Inverse set the
// roles of the forward and inverse cipher functions are swapped.
type Wrapper struct {
	Block   cipher.Block
	Inverse bool
}

func (w Wrapper) fwd(dst, src []byte) {
	if w.Inverse {
		w.Block.Decrypt(dst, src)
		return
	}
	w.Block.Encrypt(dst, src)
}

func (w Wrapper) inv(dst, src []byte) {
	if w.Inverse {
		w.Block.Encrypt(dst, src)
		return
	}
	w.Block.Decrypt(dst, src)
}

// Wrap implements RFC 3394 key wrap. plaintext must be at least 16 bytes and a
// multiple of 8; iv is the 8-byte initial value, DefaultWrapIV when nil.
func (w Wrapper) Wrap(iv, plaintext []byte) ([]byte, error) {
	if len(plaintext) < 16 || len(plaintext)%8 != 0 {
		return nil, ErrWrapLength
	}
	if iv == nil {
		iv = DefaultWrapIV
	}
	if len(iv) != 8 {
		return nil, ErrWrapLength
	}
	return w.wrap(iv, plaintext), nil
}

func (w Wrapper) wrap(iv, plaintext []byte) []byte {
	n := len(plaintext) / 8
	out := make([]byte, 8+len(plaintext))
	copy(out, iv)
	copy(out[8:], plaintext)

	var b [16]byte
	for j := 0; j < 6; j++ {
		for i := 1; i <= n; i++ {
			copy(b[:8], out[:8])
			copy(b[8:], out[i*8:i*8+8])
			w.fwd(b[:], b[:])
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(out[:8], binary.BigEndian.Uint64(b[:8])^t)
			copy(out[i*8:], b[8:])
		}
	}
	return out
}

// Unwrap reverses Wrap and verifies the initial value.
func (w Wrapper) Unwrap(iv, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 24 || len(ciphertext)%8 != 0 {
		return nil, ErrWrapLength
	}
	if iv == nil {
		iv = DefaultWrapIV
	}
	if len(iv) != 8 {
		return nil, ErrWrapLength
	}
	a, out := w.unwrap(ciphertext)
	if subtle.ConstantTimeCompare(a, iv) != 1 {
		return nil, ErrWrapIntegrity
	}
	return out, nil
}

func (w Wrapper) unwrap(ciphertext []byte) ([]byte, []byte) {
	n := len(ciphertext)/8 - 1
	a := make([]byte, 8)
	copy(a, ciphertext[:8])
	r := make([]byte, n*8)
	copy(r, ciphertext[8:])

	var b [16]byte
	for j := 5; j >= 0; j-- {
		for i := n; i >= 1; i-- {
			t := uint64(n*j + i)
			binary.BigEndian.PutUint64(b[:8], binary.BigEndian.Uint64(a)^t)
			copy(b[8:], r[(i-1)*8:i*8])
			w.inv(b[:], b[:])
			copy(a, b[:8])
			copy(r[(i-1)*8:], b[8:])
		}
	}
	return a, r
}

// WrapPad implements RFC 5649 key wrap with padding. Any non-empty plaintext is
// accepted; prefix is the 4-byte constant half of the initial value,
// DefaultWrapPadIV when nil.
func (w Wrapper) WrapPad(prefix, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 || uint64(len(plaintext)) > 0xFFFFFFFF {
		return nil, ErrWrapLength
	}
	if prefix == nil {
		prefix = DefaultWrapPadIV
	}
	if len(prefix) != 4 {
		return nil, ErrWrapLength
	}
	aiv := make([]byte, 8)
	copy(aiv, prefix)
	binary.BigEndian.PutUint32(aiv[4:], uint32(len(plaintext)))

	padded := make([]byte, (len(plaintext)+7)/8*8)
	copy(padded, plaintext)

	if len(padded) == 8 {
		out := make([]byte, 16)
		copy(out, aiv)
		copy(out[8:], padded)
		w.fwd(out, out)
		return out, nil
	}
	return w.wrap(aiv, padded), nil
}

// UnwrapPad reverses WrapPad and verifies the initial value and padding.
func (w Wrapper) UnwrapPad(prefix, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 16 || len(ciphertext)%8 != 0 {
		return nil, ErrWrapLength
	}
	if prefix == nil {
		prefix = DefaultWrapPadIV
	}
	if len(prefix) != 4 {
		return nil, ErrWrapLength
	}

	var a, p []byte
	if len(ciphertext) == 16 {
		b := make([]byte, 16)
		w.inv(b, ciphertext)
		a, p = b[:8], b[8:]
	} else {
		a, p = w.unwrap(ciphertext)
	}

	if subtle.ConstantTimeCompare(a[:4], prefix) != 1 {
		return nil, ErrWrapIntegrity
	}
	mli := int(binary.BigEndian.Uint32(a[4:]))
	if mli <= len(p)-8 || mli > len(p) {
		return nil, ErrWrapIntegrity
	}
	for _, c := range p[mli:] {
		if c != 0 {
			return nil, ErrWrapIntegrity
		}
	}
	return p[:mli], nil
}
