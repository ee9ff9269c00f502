package modes

import "crypto/cipher"

// cfb8 feeds back one byte of ciphertext per step.
type cfb8 struct {
	b       cipher.Block
	reg     []byte
	ks      []byte
	decrypt bool
}

// NewCFB8Encrypter returns the 8-bit CFB stream for iv.
func NewCFB8Encrypter(b cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(b, iv, false)
}

// NewCFB8Decrypter returns the inverse of NewCFB8Encrypter.
func NewCFB8Decrypter(b cipher.Block, iv []byte) cipher.Stream {
	return newCFB8(b, iv, true)
}

func newCFB8(b cipher.Block, iv []byte, decrypt bool) *cfb8 {
	if len(iv) != b.BlockSize() {
		panic("modes: iv length must equal block size")
	}
	reg := make([]byte, len(iv))
	copy(reg, iv)
	return &cfb8{b: b, reg: reg, ks: make([]byte, len(iv)), decrypt: decrypt}
}

func (c *cfb8) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("modes: output smaller than input")
	}
	last := len(c.reg) - 1
	for i, in := range src {
		c.b.Encrypt(c.ks, c.reg)
		out := in ^ c.ks[0]
		fb := out
		if c.decrypt {
			fb = in
		}
		copy(c.reg, c.reg[1:])
		c.reg[last] = fb
		dst[i] = out
	}
}

// cfb1 feeds back a single bit per step, most significant bit first.
type cfb1 struct {
	b       cipher.Block
	reg     []byte
	ks      []byte
	decrypt bool
}

// NewCFB1Encrypter returns the 1-bit CFB stream for iv.
func NewCFB1Encrypter(b cipher.Block, iv []byte) cipher.Stream {
	return newCFB1(b, iv, false)
}

// NewCFB1Decrypter returns the inverse of NewCFB1Encrypter.
func NewCFB1Decrypter(b cipher.Block, iv []byte) cipher.Stream {
	return newCFB1(b, iv, true)
}

func newCFB1(b cipher.Block, iv []byte, decrypt bool) *cfb1 {
	if len(iv) != b.BlockSize() {
		panic("modes: iv length must equal block size")
	}
	reg := make([]byte, len(iv))
	copy(reg, iv)
	return &cfb1{b: b, reg: reg, ks: make([]byte, len(iv)), decrypt: decrypt}
}

func (c *cfb1) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("modes: output smaller than input")
	}
	for i, in := range src {
		var out byte
		for bit := 7; bit >= 0; bit-- {
			c.b.Encrypt(c.ks, c.reg)
			inBit := (in >> uint(bit)) & 1
			outBit := inBit ^ (c.ks[0] >> 7)
			out |= outBit << uint(bit)
			fb := outBit
			if c.decrypt {
				fb = inBit
			}
			shiftLeftBit(c.reg, fb)
		}
		dst[i] = out
	}
}

func shiftLeftBit(reg []byte, in byte) {
	for i := 0; i < len(reg)-1; i++ {
		reg[i] = reg[i]<<1 | reg[i+1]>>7
	}
	reg[len(reg)-1] = reg[len(reg)-1]<<1 | in&1
}
