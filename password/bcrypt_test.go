package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := Bcrypt{Cost: bcrypt.MinCost}

	hash, err := h.Hash("lion-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Fatalf("unexpected prefix: %s", hash)
	}
	if ok, err := h.Verify("lion-password", hash); err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v", ok, err)
	}
	if ok, err := h.Verify("other", hash); err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v", ok, err)
	}
}

func TestBcryptDefaultCost(t *testing.T) {
	hash, err := Bcrypt{}.Hash("default-cost")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != DefaultBcryptCost {
		t.Fatalf("cost = %d, %v; want %d", cost, err, DefaultBcryptCost)
	}

	up, err := Bcrypt{Cost: DefaultBcryptCost + 1}.NeedsUpgrade(hash)
	if err != nil || !up {
		t.Fatalf("NeedsUpgrade = %v, %v", up, err)
	}
}

func TestBcryptErrors(t *testing.T) {
	if _, err := (Bcrypt{Cost: 99}).Hash("x"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("cost err = %v", err)
	}
	if _, err := (Bcrypt{}).Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty err = %v", err)
	}
	if _, err := (Bcrypt{}).Hash(strings.Repeat("x", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("long err = %v", err)
	}
	if _, err := (Bcrypt{}).Verify("x", "$2a$garbage"); !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("garbage err = %v", err)
	}
}

func TestVerifyDispatch(t *testing.T) {
	b, err := Bcrypt{Cost: bcrypt.MinCost}.Hash("shared-secret")
	if err != nil {
		t.Fatalf("bcrypt Hash: %v", err)
	}
	a, err := newTestArgon2(t, testArgon2Config()).Hash("shared-secret")
	if err != nil {
		t.Fatalf("argon2 Hash: %v", err)
	}

	for _, encoded := range []string{b, a} {
		if ok, err := Verify("shared-secret", encoded); err != nil || !ok {
			t.Fatalf("Verify(%q) = %v, %v", encoded[:8], ok, err)
		}
	}
	if _, err := Verify("shared-secret", "plain"); !errors.Is(err, ErrUnknownHash) {
		t.Fatalf("unknown err = %v", err)
	}
	if _, ok := Default().(Bcrypt); !ok {
		t.Fatal("Default should be bcrypt")
	}
}

func TestSHA256(t *testing.T) {
	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := SHA256("abc"); got != abc {
		t.Fatalf("SHA256(abc) = %s", got)
	}

	got := SHA256Map(map[string]string{"a": "abc", "empty": ""})
	if got["a"] != abc {
		t.Fatalf("map a = %s", got["a"])
	}
	if got["empty"] != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("map empty = %s", got["empty"])
	}
}
