package modes

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
)

// ErrSIVAuth is returned when a SIV ciphertext fails authentication.
var ErrSIVAuth = errors.New("siv: message authentication failed")

// SIV implements RFC 5297 deterministic authenticated encryption without
// associated data. The key is split in half: the first half keys S2V, the
// second keys CTR.
type SIV struct {
	mac cipher.Block
	ctr cipher.Block
}

// NewSIV builds a SIV instance from a 32, 48, or 64 byte key.
func NewSIV(key []byte) (*SIV, error) {
	switch len(key) {
	case 32, 48, 64:
	default:
		return nil, aes.KeySizeError(len(key))
	}
	half := len(key) / 2
	mac, err := aes.NewCipher(key[:half])
	if err != nil {
		return nil, err
	}
	ctr, err := aes.NewCipher(key[half:])
	if err != nil {
		return nil, err
	}
	return &SIV{mac: mac, ctr: ctr}, nil
}

// Seal returns V || C where V is the 16-byte synthetic IV.
func (s *SIV) Seal(plaintext []byte) []byte {
	v := s2v(s.mac, plaintext)
	out := make([]byte, aes.BlockSize+len(plaintext))
	copy(out, v)
	cipher.NewCTR(s.ctr, ctrIV(v)).XORKeyStream(out[aes.BlockSize:], plaintext)
	return out
}

// Open verifies and decrypts the output of Seal.
func (s *SIV) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < aes.BlockSize {
		return nil, ErrSIVAuth
	}
	v := ciphertext[:aes.BlockSize]
	out := make([]byte, len(ciphertext)-aes.BlockSize)
	cipher.NewCTR(s.ctr, ctrIV(v)).XORKeyStream(out, ciphertext[aes.BlockSize:])
	if subtle.ConstantTimeCompare(s2v(s.mac, out), v) != 1 {
		return nil, ErrSIVAuth
	}
	return out, nil
}

// ctrIV clears the 31st and 63rd bits of v, counted from the right.
func ctrIV(v []byte) []byte {
	q := make([]byte, aes.BlockSize)
	copy(q, v)
	q[8] &= 0x7f
	q[12] &= 0x7f
	return q
}

func s2v(b cipher.Block, plaintext []byte) []byte {
	var zero [aes.BlockSize]byte
	d := CMAC(b, zero[:])
	if len(plaintext) >= aes.BlockSize {
		t := make([]byte, len(plaintext))
		copy(t, plaintext)
		off := len(t) - aes.BlockSize
		subtle.XORBytes(t[off:], t[off:], d)
		return CMAC(b, t)
	}
	t := make([]byte, aes.BlockSize)
	copy(t, plaintext)
	t[len(plaintext)] = 0x80
	subtle.XORBytes(t, t, dbl(d))
	return CMAC(b, t)
}

// CMAC computes the RFC 4493 tag of msg.
func CMAC(b cipher.Block, msg []byte) []byte {
	bs := b.BlockSize()
	l := make([]byte, bs)
	b.Encrypt(l, l)
	k1 := dbl(l)
	k2 := dbl(k1)

	n := (len(msg) + bs - 1) / bs
	complete := n > 0 && len(msg)%bs == 0
	if n == 0 {
		n = 1
	}

	last := make([]byte, bs)
	if complete {
		copy(last, msg[(n-1)*bs:])
		subtle.XORBytes(last, last, k1)
	} else {
		rest := msg[(n-1)*bs:]
		copy(last, rest)
		last[len(rest)] = 0x80
		subtle.XORBytes(last, last, k2)
	}

	x := make([]byte, bs)
	for i := 0; i < n-1; i++ {
		subtle.XORBytes(x, x, msg[i*bs:(i+1)*bs])
		b.Encrypt(x, x)
	}
	subtle.XORBytes(x, x, last)
	b.Encrypt(x, x)
	return x
}

// dbl multiplies by x in GF(2^128).
func dbl(in []byte) []byte {
	out := make([]byte, len(in))
	var carry byte
	for i := len(in) - 1; i >= 0; i-- {
		out[i] = in[i]<<1 | carry
		carry = in[i] >> 7
	}
	if carry != 0 {
		out[len(out)-1] ^= 0x87
	}
	return out
}
