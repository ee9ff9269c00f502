package aes

import (
	stdaes "crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ProtonMail/go-crypto/ocb"
	"golang.org/x/crypto/xts"

	"github.com/MrEthical07/goSecurity/catalog"
	"github.com/MrEthical07/goSecurity/internal/modes"
)

const (
	aeadNonceSize = 12
	aeadTagSize   = 16
)

var (
	ErrKeyLength    = errors.New("invalid key length")
	ErrIVLength     = errors.New("invalid iv length")
	ErrXTSSector    = errors.New("xts iv must encode a 64-bit sector number")
	ErrShortMessage = errors.New("ciphertext too short")
)

func checkLengths(m catalog.Method, key, iv []byte) error {
	if len(key) != m.KeyLen {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrKeyLength, m.Name, m.KeyLen, len(key))
	}
	if len(iv) != m.IVLen {
		return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrIVLength, m.Name, m.IVLen, len(iv))
	}
	return nil
}

func xtsSector(iv []byte) (uint64, error) {
	for _, b := range iv[8:] {
		if b != 0 {
			return 0, ErrXTSSector
		}
	}
	return binary.LittleEndian.Uint64(iv[:8]), nil
}

func newAEAD(m catalog.Method, block cipher.Block) (cipher.AEAD, error) {
	if m.Mode == catalog.ModeOCB {
		return ocb.NewOCBWithNonceAndTagSize(block, aeadNonceSize, aeadTagSize)
	}
	return cipher.NewGCMWithNonceSize(block, aeadNonceSize)
}

func wrapper(m catalog.Method, block cipher.Block) modes.Wrapper {
	inverse := m.Mode == catalog.ModeWrapInv || m.Mode == catalog.ModeWrapPadInv
	return modes.Wrapper{Block: block, Inverse: inverse}
}

func stream(s cipher.Stream, src []byte) []byte {
	out := make([]byte, len(src))
	s.XORKeyStream(out, src)
	return out
}

// seal encrypts plaintext with the method's mode. Key and iv lengths must match
// the catalog exactly.
func seal(m catalog.Method, key, iv, plaintext []byte) ([]byte, error) {
	if err := checkLengths(m, key, iv); err != nil {
		return nil, err
	}

	switch m.Mode {
	case catalog.ModeSIV:
		s, err := modes.NewSIV(key)
		if err != nil {
			return nil, err
		}
		return s.Seal(plaintext), nil
	case catalog.ModeXTS:
		sector, err := xtsSector(iv)
		if err != nil {
			return nil, err
		}
		x, err := xts.NewCipher(stdaes.NewCipher, key)
		if err != nil {
			return nil, err
		}
		padded := modes.Pad(plaintext, stdaes.BlockSize)
		out := make([]byte, len(padded))
		x.Encrypt(out, padded, sector)
		return out, nil
	}

	block, err := stdaes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	switch m.Mode {
	case catalog.ModeCBC:
		padded := modes.Pad(plaintext, block.BlockSize())
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)
		return padded, nil
	case catalog.ModeECB:
		padded := modes.Pad(plaintext, block.BlockSize())
		modes.NewECBEncrypter(block).CryptBlocks(padded, padded)
		return padded, nil
	// CFB and OFB are deprecated in crypto/cipher but remain catalog methods.
	case catalog.ModeCFB:
		return stream(cipher.NewCFBEncrypter(block, iv), plaintext), nil
	case catalog.ModeCFB1:
		return stream(modes.NewCFB1Encrypter(block, iv), plaintext), nil
	case catalog.ModeCFB8:
		return stream(modes.NewCFB8Encrypter(block, iv), plaintext), nil
	case catalog.ModeCTR:
		return stream(cipher.NewCTR(block, iv), plaintext), nil
	case catalog.ModeOFB:
		return stream(cipher.NewOFB(block, iv), plaintext), nil
	case catalog.ModeGCM, catalog.ModeOCB:
		aead, err := newAEAD(m, block)
		if err != nil {
			return nil, err
		}
		return aead.Seal(nil, iv, plaintext, nil), nil
	case catalog.ModeWrap, catalog.ModeWrapInv:
		return wrapper(m, block).Wrap(iv, plaintext)
	case catalog.ModeWrapPad, catalog.ModeWrapPadInv:
		return wrapper(m, block).WrapPad(iv, plaintext)
	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnsupportedMethod, m.Name)
	}
}

// open reverses seal and authenticates where the mode allows it.
func open(m catalog.Method, key, iv, ciphertext []byte) ([]byte, error) {
	if err := checkLengths(m, key, iv); err != nil {
		return nil, err
	}

	switch m.Mode {
	case catalog.ModeSIV:
		s, err := modes.NewSIV(key)
		if err != nil {
			return nil, err
		}
		return s.Open(ciphertext)
	case catalog.ModeXTS:
		if len(ciphertext) == 0 || len(ciphertext)%stdaes.BlockSize != 0 {
			return nil, modes.ErrNotFullBlocks
		}
		sector, err := xtsSector(iv)
		if err != nil {
			return nil, err
		}
		x, err := xts.NewCipher(stdaes.NewCipher, key)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(ciphertext))
		x.Decrypt(out, ciphertext, sector)
		return modes.Unpad(out, stdaes.BlockSize)
	}

	block, err := stdaes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	switch m.Mode {
	case catalog.ModeCBC, catalog.ModeECB:
		if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
			return nil, modes.ErrNotFullBlocks
		}
		out := make([]byte, len(ciphertext))
		if m.Mode == catalog.ModeCBC {
			cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
		} else {
			modes.NewECBDecrypter(block).CryptBlocks(out, ciphertext)
		}
		return modes.Unpad(out, block.BlockSize())
	case catalog.ModeCFB:
		return stream(cipher.NewCFBDecrypter(block, iv), ciphertext), nil
	case catalog.ModeCFB1:
		return stream(modes.NewCFB1Decrypter(block, iv), ciphertext), nil
	case catalog.ModeCFB8:
		return stream(modes.NewCFB8Decrypter(block, iv), ciphertext), nil
	case catalog.ModeCTR:
		return stream(cipher.NewCTR(block, iv), ciphertext), nil
	case catalog.ModeOFB:
		return stream(cipher.NewOFB(block, iv), ciphertext), nil
	case catalog.ModeGCM, catalog.ModeOCB:
		aead, err := newAEAD(m, block)
		if err != nil {
			return nil, err
		}
		if len(ciphertext) < aead.Overhead() {
			return nil, ErrShortMessage
		}
		return aead.Open(nil, iv, ciphertext, nil)
	case catalog.ModeWrap, catalog.ModeWrapInv:
		return wrapper(m, block).Unwrap(iv, ciphertext)
	case catalog.ModeWrapPad, catalog.ModeWrapPadInv:
		return wrapper(m, block).UnwrapPad(iv, ciphertext)
	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnsupportedMethod, m.Name)
	}
}
