package password

import (
	"errors"
	"strings"
	"testing"
)

func testArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func newTestArgon2(t *testing.T, cfg Argon2Config) *Argon2 {
	t.Helper()
	h, err := NewArgon2(cfg)
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}
	return h
}

func TestArgon2HashAndVerify(t *testing.T) {
	h := newTestArgon2(t, testArgon2Config())

	hash, err := h.Hash("P@ssw0rd-Ascii")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	ok, err := h.Verify("P@ssw0rd-Ascii", hash)
	if err != nil || !ok {
		t.Fatalf("Verify(correct) = %v, %v", ok, err)
	}
	ok, err = h.Verify("wrong-password", hash)
	if err != nil || ok {
		t.Fatalf("Verify(wrong) = %v, %v", ok, err)
	}
}

func TestArgon2ZeroValueVerifiesOnly(t *testing.T) {
	hash, err := newTestArgon2(t, testArgon2Config()).Hash("secret-value")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	var zero Argon2
	if ok, err := zero.Verify("secret-value", hash); err != nil || !ok {
		t.Fatalf("zero Verify = %v, %v", ok, err)
	}
	if _, err := zero.Hash("secret-value"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero Hash err = %v, want ErrInvalidParameter", err)
	}
}

func TestArgon2AcceptsPaddedBase64(t *testing.T) {
	h := newTestArgon2(t, testArgon2Config())
	hash, err := h.Hash("padded-value")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	parts := strings.Split(hash, "$")
	parts[4] += "=="
	parts[5] += "="
	if ok, err := h.Verify("padded-value", strings.Join(parts, "$")); err != nil || !ok {
		t.Fatalf("Verify(padded) = %v, %v", ok, err)
	}
}

func TestArgon2NeedsUpgrade(t *testing.T) {
	old := newTestArgon2(t, testArgon2Config())
	hash, err := old.Hash("upgrade-me")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	stronger := testArgon2Config()
	stronger.Time = 2
	up, err := newTestArgon2(t, stronger).NeedsUpgrade(hash)
	if err != nil || !up {
		t.Fatalf("NeedsUpgrade(stronger) = %v, %v", up, err)
	}

	up, err = old.NeedsUpgrade(hash)
	if err != nil || up {
		t.Fatalf("NeedsUpgrade(same) = %v, %v", up, err)
	}
}

func TestArgon2RejectsMalformedHashes(t *testing.T) {
	h := newTestArgon2(t, testArgon2Config())
	valid, err := h.Hash("malformed-base")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	cases := map[string]string{
		"not phc":       "not-a-phc-hash",
		"version":       strings.Replace(valid, "$v=19$", "$v=18$", 1),
		"missing param": strings.Replace(valid, ",p=1", "", 1),
		"dup param":     strings.Replace(valid, ",p=1", ",t=1", 1),
		"low memory":    strings.Replace(valid, "m=8192", "m=1024", 1),
		"unknown param": strings.Replace(valid, "p=1", "x=1", 1),
	}
	for name, encoded := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := h.Verify("malformed-base", encoded); !errors.Is(err, ErrInvalidHash) {
				t.Fatalf("err = %v, want ErrInvalidHash", err)
			}
		})
	}

	other := strings.Replace(valid, "$argon2id$", "$argon2i$", 1)
	if _, err := h.Verify("malformed-base", other); !errors.Is(err, ErrUnknownHash) {
		t.Fatalf("argon2i err = %v, want ErrUnknownHash", err)
	}
}

func TestArgon2PasswordLength(t *testing.T) {
	cfg := testArgon2Config()
	cfg.MaxPasswordBytes = 64
	h := newTestArgon2(t, cfg)

	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty err = %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", 65)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("long err = %v", err)
	}

	exact := strings.Repeat("b", 64)
	hash, err := h.Hash(exact)
	if err != nil {
		t.Fatalf("Hash(exact): %v", err)
	}
	if ok, err := h.Verify(exact, hash); err != nil || !ok {
		t.Fatalf("Verify(exact) = %v, %v", ok, err)
	}
	if _, err := h.Verify(strings.Repeat("c", 65), hash); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("Verify(long) err = %v", err)
	}
}

func TestArgon2DefaultMaxPasswordBytes(t *testing.T) {
	h := newTestArgon2(t, testArgon2Config())
	if _, err := h.Hash(strings.Repeat("d", DefaultMaxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("err = %v, want ErrPasswordTooLong", err)
	}
	if _, err := h.Hash(strings.Repeat("e", DefaultMaxPasswordBytes)); err != nil {
		t.Fatalf("Hash(max): %v", err)
	}
}

func TestArgon2ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Argon2Config)
	}{
		{"memory", func(c *Argon2Config) { c.Memory = 1024 }},
		{"time", func(c *Argon2Config) { c.Time = 0 }},
		{"parallelism", func(c *Argon2Config) { c.Parallelism = 0 }},
		{"salt", func(c *Argon2Config) { c.SaltLength = 8 }},
		{"key", func(c *Argon2Config) { c.KeyLength = 8 }},
		{"max bytes", func(c *Argon2Config) { c.MaxPasswordBytes = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testArgon2Config()
			tt.mutate(&cfg)
			if _, err := NewArgon2(cfg); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}

	if _, err := NewArgon2(DefaultArgon2Config()); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
}
