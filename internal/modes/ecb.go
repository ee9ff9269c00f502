package modes

import "crypto/cipher"

type ecb struct {
	b       cipher.Block
	decrypt bool
}

// NewECBEncrypter returns a BlockMode that encrypts each block independently.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b}
}

// NewECBDecrypter returns a BlockMode that decrypts each block independently.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return &ecb{b: b, decrypt: true}
}

func (e *ecb) BlockSize() int { return e.b.BlockSize() }

func (e *ecb) CryptBlocks(dst, src []byte) {
	bs := e.b.BlockSize()
	if len(src)%bs != 0 {
		panic("modes: input not full blocks")
	}
	if len(dst) < len(src) {
		panic("modes: output smaller than input")
	}
	for len(src) > 0 {
		if e.decrypt {
			e.b.Decrypt(dst[:bs], src[:bs])
		} else {
			e.b.Encrypt(dst[:bs], src[:bs])
		}
		src = src[bs:]
		dst = dst[bs:]
	}
}
