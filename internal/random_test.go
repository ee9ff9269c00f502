package internal

import (
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func TestRandomLengths(t *testing.T) {
	for _, n := range []int{0, 1, 12, 16, 64} {
		b, err := RandomBytes(n)
		if err != nil || len(b) != n {
			t.Fatalf("RandomBytes(%d) = %d bytes, %v", n, len(b), err)
		}

		h, err := RandomHex(n)
		if err != nil {
			t.Fatalf("RandomHex(%d): %v", n, err)
		}
		if raw, _ := hex.DecodeString(h); len(raw) != n {
			t.Fatalf("RandomHex(%d) decoded to %d bytes", n, len(raw))
		}

		s, err := RandomBase64(n)
		if err != nil {
			t.Fatalf("RandomBase64(%d): %v", n, err)
		}
		if raw, _ := base64.StdEncoding.DecodeString(s); len(raw) != n {
			t.Fatalf("RandomBase64(%d) decoded to %d bytes", n, len(raw))
		}
	}
}

func TestRandomRejectsNegative(t *testing.T) {
	if _, err := RandomBytes(-1); err != ErrNegativeLength {
		t.Fatalf("expected ErrNegativeLength, got %v", err)
	}
}

func TestRandomBytesDiffer(t *testing.T) {
	a, _ := RandomBytes(32)
	b, _ := RandomBytes(32)
	if string(a) == string(b) {
		t.Fatalf("two random draws should not collide")
	}
}
