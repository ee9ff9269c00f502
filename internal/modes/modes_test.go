package modes

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func mustBlock(t *testing.T, key []byte) cipher.Block {
	t.Helper()
	b, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher: %v", err)
	}
	return b
}

func TestPadUnpad(t *testing.T) {
	for n := 0; n < 40; n++ {
		src := bytes.Repeat([]byte{'x'}, n)
		padded := Pad(src, 16)
		if len(padded)%16 != 0 || len(padded) <= n {
			t.Fatalf("Pad(%d) produced %d bytes", n, len(padded))
		}
		got, err := Unpad(padded, 16)
		if err != nil {
			t.Fatalf("Unpad(%d): %v", n, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("Unpad(%d) mismatch", n)
		}
	}

	bad := append(bytes.Repeat([]byte{'a'}, 15), 0)
	if _, err := Unpad(bad, 16); !errors.Is(err, ErrInvalidPadding) {
		t.Fatalf("expected ErrInvalidPadding, got %v", err)
	}
	if _, err := Unpad([]byte("short"), 16); !errors.Is(err, ErrNotFullBlocks) {
		t.Fatalf("expected ErrNotFullBlocks, got %v", err)
	}
}

func TestECBKnownAnswer(t *testing.T) {
	b := mustBlock(t, mustHex(t, "000102030405060708090a0b0c0d0e0f"))
	pt := mustHex(t, "00112233445566778899aabbccddeeff")
	want := mustHex(t, "69c4e0d86a7b0430d8cdb78070b4c55a")

	src := append(append([]byte{}, pt...), pt...)
	ct := make([]byte, len(src))
	NewECBEncrypter(b).CryptBlocks(ct, src)
	if !bytes.Equal(ct[:16], want) || !bytes.Equal(ct[16:], want) {
		t.Fatalf("ECB ciphertext = %x", ct)
	}

	back := make([]byte, len(ct))
	NewECBDecrypter(b).CryptBlocks(back, ct)
	if !bytes.Equal(back, src) {
		t.Fatalf("ECB decrypt mismatch")
	}
}

func TestCFB8KnownAnswer(t *testing.T) {
	b := mustBlock(t, mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := mustHex(t, "6bc1bee22e409f96e93d7e117393172aae2d")
	want := mustHex(t, "3b79424c9c0dd436bace9e0ed4586a4f32b9")

	ct := make([]byte, len(pt))
	NewCFB8Encrypter(b, iv).XORKeyStream(ct, pt)
	if !bytes.Equal(ct, want) {
		t.Fatalf("CFB8 ciphertext = %x, want %x", ct, want)
	}
	back := make([]byte, len(ct))
	NewCFB8Decrypter(b, iv).XORKeyStream(back, ct)
	if !bytes.Equal(back, pt) {
		t.Fatalf("CFB8 decrypt mismatch")
	}
}

func TestCFB1KnownAnswer(t *testing.T) {
	b := mustBlock(t, mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	pt := mustHex(t, "6bc1")
	want := mustHex(t, "68b3")

	ct := make([]byte, len(pt))
	NewCFB1Encrypter(b, iv).XORKeyStream(ct, pt)
	if !bytes.Equal(ct, want) {
		t.Fatalf("CFB1 ciphertext = %x, want %x", ct, want)
	}

	long := []byte("the quick brown fox jumps over the lazy dog")
	enc := make([]byte, len(long))
	NewCFB1Encrypter(b, iv).XORKeyStream(enc, long)
	dec := make([]byte, len(enc))
	NewCFB1Decrypter(b, iv).XORKeyStream(dec, enc)
	if !bytes.Equal(dec, long) {
		t.Fatalf("CFB1 round trip mismatch")
	}
}

func TestKeyWrapRFC3394(t *testing.T) {
	w := Wrapper{Block: mustBlock(t, mustHex(t, "000102030405060708090A0B0C0D0E0F"))}
	pt := mustHex(t, "00112233445566778899AABBCCDDEEFF")
	want := mustHex(t, "1FA68B0A8112B447AEF34BD8FB5A7B829D3E862371D2CFE5")

	ct, err := w.Wrap(nil, pt)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if !bytes.Equal(ct, want) {
		t.Fatalf("Wrap = %x, want %x", ct, want)
	}
	back, err := w.Unwrap(nil, ct)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if !bytes.Equal(back, pt) {
		t.Fatalf("Unwrap mismatch")
	}

	ct[3] ^= 1
	if _, err := w.Unwrap(nil, ct); !errors.Is(err, ErrWrapIntegrity) {
		t.Fatalf("expected ErrWrapIntegrity, got %v", err)
	}
	if _, err := w.Wrap(nil, []byte("short")); !errors.Is(err, ErrWrapLength) {
		t.Fatalf("expected ErrWrapLength, got %v", err)
	}
}

func TestKeyWrapRFC5649(t *testing.T) {
	w := Wrapper{Block: mustBlock(t, mustHex(t, "5840df6e29b02af1ab493b705bf16ea1ae8338f4dcc176a8"))}
	cases := []struct {
		pt   string
		want string
	}{
		{"c37b7e6492584340bed12207808941155068f738", "138bdeaa9b8fa7fc61f97742e72248ee5ae6ae5360d1ae6a5f54f373fa543b6a"},
		{"466f7250617369", "afbeb0f07dfbf5419200f2ccb50bb24f"},
	}
	for _, tc := range cases {
		pt := mustHex(t, tc.pt)
		ct, err := w.WrapPad(nil, pt)
		if err != nil {
			t.Fatalf("WrapPad: %v", err)
		}
		if !bytes.Equal(ct, mustHex(t, tc.want)) {
			t.Fatalf("WrapPad(%s) = %x, want %s", tc.pt, ct, tc.want)
		}
		back, err := w.UnwrapPad(nil, ct)
		if err != nil {
			t.Fatalf("UnwrapPad: %v", err)
		}
		if !bytes.Equal(back, pt) {
			t.Fatalf("UnwrapPad mismatch for %s", tc.pt)
		}
	}
	if _, err := w.WrapPad(nil, nil); !errors.Is(err, ErrWrapLength) {
		t.Fatalf("expected ErrWrapLength for empty input, got %v", err)
	}
}

func TestInverseWrapRoundTrip(t *testing.T) {
	b := mustBlock(t, bytes.Repeat([]byte{7}, 32))
	w := Wrapper{Block: b, Inverse: true}
	fwd := Wrapper{Block: b}

	for _, msg := range []string{"x", "Sleon", "exactly-sixteen!", "a somewhat longer message body"} {
		ct, err := w.WrapPad([]byte{1, 2, 3, 4}, []byte(msg))
		if err != nil {
			t.Fatalf("WrapPad(%q): %v", msg, err)
		}
		fct, _ := fwd.WrapPad([]byte{1, 2, 3, 4}, []byte(msg))
		if bytes.Equal(ct, fct) {
			t.Fatalf("inverse wrap should differ from forward wrap for %q", msg)
		}
		back, err := w.UnwrapPad([]byte{1, 2, 3, 4}, ct)
		if err != nil {
			t.Fatalf("UnwrapPad(%q): %v", msg, err)
		}
		if string(back) != msg {
			t.Fatalf("UnwrapPad = %q, want %q", back, msg)
		}
	}
}

func TestCMACRFC4493(t *testing.T) {
	b := mustBlock(t, mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c"))
	cases := []struct {
		msg  string
		want string
	}{
		{"", "bb1d6929e95937287fa37d129b756746"},
		{"6bc1bee22e409f96e93d7e117393172a", "070a16b46b4d4144f79bdd9dd04a287c"},
	}
	for _, tc := range cases {
		got := CMAC(b, mustHex(t, tc.msg))
		if !bytes.Equal(got, mustHex(t, tc.want)) {
			t.Fatalf("CMAC(%s) = %x, want %s", tc.msg, got, tc.want)
		}
	}
}

func TestSIVRoundTripAndTamper(t *testing.T) {
	for _, size := range []int{32, 48, 64} {
		s, err := NewSIV(bytes.Repeat([]byte{0x42}, size))
		if err != nil {
			t.Fatalf("NewSIV(%d): %v", size, err)
		}
		for _, msg := range []string{"", "Sleon", "sixteen byte msg", "a message that spans more than one block"} {
			ct := s.Seal([]byte(msg))
			if len(ct) != len(msg)+16 {
				t.Fatalf("Seal length = %d", len(ct))
			}
			if again := s.Seal([]byte(msg)); !bytes.Equal(again, ct) {
				t.Fatalf("SIV must be deterministic")
			}
			pt, err := s.Open(ct)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if string(pt) != msg {
				t.Fatalf("Open = %q, want %q", pt, msg)
			}
			ct[len(ct)-1] ^= 0x01
			if _, err := s.Open(ct); !errors.Is(err, ErrSIVAuth) {
				t.Fatalf("expected ErrSIVAuth, got %v", err)
			}
		}
	}
	if _, err := NewSIV(make([]byte, 16)); err == nil {
		t.Fatalf("expected key size error")
	}
}
