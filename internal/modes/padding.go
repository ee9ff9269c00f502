package modes

import "errors"

// ErrInvalidPadding is returned when PKCS#7 padding does not verify.
var ErrInvalidPadding = errors.New("invalid padding")

// ErrNotFullBlocks is returned when block-mode input is not a multiple of the block size.
var ErrNotFullBlocks = errors.New("input not full blocks")

// Pad appends PKCS#7 padding so that len(result) is a positive multiple of blockSize.
func Pad(src []byte, blockSize int) []byte {
	n := blockSize - len(src)%blockSize
	out := make([]byte, len(src)+n)
	copy(out, src)
	for i := len(src); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// Unpad strips PKCS#7 padding.
func Unpad(src []byte, blockSize int) ([]byte, error) {
	if len(src) == 0 || len(src)%blockSize != 0 {
		return nil, ErrNotFullBlocks
	}
	n := int(src[len(src)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	for _, b := range src[len(src)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}
	return src[:len(src)-n], nil
}
