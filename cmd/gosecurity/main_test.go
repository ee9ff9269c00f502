package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MrEthical07/goSecurity/password"
)

func executeCommand(args []string) (string, error) {
	defer resetCmdArgs()

	buf := new(bytes.Buffer)
	rootCmd.SetArgs(append([]string{"--env-file="}, args...))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))

	err := rootCmd.Execute()
	return buf.String(), err
}

func executeWithInput(in string, args []string) (string, error) {
	defer resetCmdArgs()

	buf := new(bytes.Buffer)
	rootCmd.SetArgs(append([]string{"--env-file="}, args...))
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(in))

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetCmdArgs restores flag variables between runs of the shared rootCmd.
func resetCmdArgs() {
	rootArgs = rootFlags{envFile: ".env", output: "text"}
	aesArgs = aesFlags{}
	rsaCreateArgs = rsaCreateFlags{}
	tokenArgs = tokenFlags{}
	tokenIssueArgs = tokenIssueFlags{jtiBytes: 16}
	passwordArgs = passwordFlags{}
	sec = nil
}

func parseLines(t *testing.T, out string) map[string]string {
	t.Helper()
	m := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("unexpected line %q", line)
		}
		m[k] = v
	}
	return m
}

func TestAESCommands(t *testing.T) {
	out, err := executeCommand([]string{"aes", "create", "aes-128-cbc"})
	if err != nil {
		t.Fatalf("aes create: %v\n%s", err, out)
	}
	gen := parseLines(t, out)
	if gen["GOSECURITY_AES_METHOD"] != "aes-128-cbc" || len(gen["GOSECURITY_AES_KEY"]) != 32 || len(gen["GOSECURITY_AES_IV"]) != 32 {
		t.Fatalf("aes create output = %v", gen)
	}

	flags := []string{"--method", gen["GOSECURITY_AES_METHOD"], "--key", gen["GOSECURITY_AES_KEY"], "--iv", gen["GOSECURITY_AES_IV"]}
	out, err = executeCommand(append([]string{"aes", "encode", "name=Sleon", "email=sleon@example.com"}, flags...))
	if err != nil {
		t.Fatalf("aes encode: %v\n%s", err, out)
	}
	enc := parseLines(t, out)
	if len(enc) != 2 || enc["name"] == "Sleon" {
		t.Fatalf("aes encode output = %v", enc)
	}

	out, err = executeCommand(append([]string{"aes", "decode", "name=" + enc["name"], "email=" + enc["email"]}, flags...))
	if err != nil {
		t.Fatalf("aes decode: %v\n%s", err, out)
	}
	if dec := parseLines(t, out); dec["name"] != "Sleon" || dec["email"] != "sleon@example.com" {
		t.Fatalf("aes decode output = %v", dec)
	}
}

func TestAESErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unsupported method", []string{"aes", "create", "aes-100-cbc"}},
		{"missing key", []string{"aes", "encode", "a=b"}},
		{"bad pair", []string{"aes", "encode", "novalue", "--key", "00"}},
		{"bad output", []string{"aes", "create", "-o", "yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(tt.args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRSAAndTokenCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand([]string{"rsa", "create", "--keys-dir", dir, "--bits", "1024"})
	if err != nil {
		t.Fatalf("rsa create: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1024-bit key pair written to "+dir) {
		t.Fatalf("rsa create output = %q", out)
	}

	out, err = executeCommand([]string{"rsa", "jwks", "--keys-dir", dir})
	if err != nil {
		t.Fatalf("rsa jwks: %v\n%s", err, out)
	}
	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	if err := json.Unmarshal([]byte(out), &set); err != nil || len(set.Keys) != 1 || set.Keys[0]["kty"] != "RSA" {
		t.Fatalf("jwks = %s (%v)", out, err)
	}

	out, err = executeCommand([]string{"token", "issue", "--keys-dir", dir, "user=sleon"})
	if err != nil {
		t.Fatalf("token issue: %v\n%s", err, out)
	}
	token := strings.TrimSpace(out)
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token = %q", token)
	}

	out, err = executeCommand([]string{"token", "verify", "--keys-dir", dir, token})
	if err != nil {
		t.Fatalf("token verify: %v\n%s", err, out)
	}
	var claims struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &claims); err != nil || claims.Data["user"] != "sleon" {
		t.Fatalf("claims = %s (%v)", out, err)
	}

	out, err = executeCommand([]string{"token", "verify", "--keys-dir", dir, "null"})
	if err == nil || !strings.Contains(out, `"message": "The JWT does not exist"`) {
		t.Fatalf("verify null: err=%v out=%s", err, out)
	}
}

func TestHMACTokenFromEnv(t *testing.T) {
	t.Setenv("GOSECURITY_JWT_ALGORITHM", "HS256")
	t.Setenv("GOSECURITY_JWT_SECRET", "0123456789sleon4")

	out, err := executeCommand([]string{"token", "issue", "--ttl", "60", "id=7"})
	if err != nil {
		t.Fatalf("token issue: %v\n%s", err, out)
	}
	token := strings.TrimSpace(out)

	if out, err := executeCommand([]string{"token", "verify", token}); err != nil {
		t.Fatalf("token verify: %v\n%s", err, out)
	}
	if _, err := executeCommand([]string{"token", "verify", "--secret", "another-secret", token}); err == nil {
		t.Fatal("expected verification with another secret to fail")
	}
}

func TestTokenBearer(t *testing.T) {
	out, err := executeCommand([]string{"token", "bearer", "Bearer abc.def.ghi"})
	if err != nil || strings.TrimSpace(out) != "abc.def.ghi" {
		t.Fatalf("bearer = %q, %v", out, err)
	}
	if _, err := executeCommand([]string{"token", "bearer", "Basic dXNlcg=="}); err == nil {
		t.Fatal("expected error for non-bearer header")
	}
}

func TestPasswordCommands(t *testing.T) {
	out, err := executeWithInput("correct-horse\n", []string{"password", "hash", "--password-stdin"})
	if err != nil {
		t.Fatalf("password hash: %v\n%s", err, out)
	}
	hash := strings.TrimSpace(out)
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Fatalf("hash = %q", hash)
	}

	if out, err := executeCommand([]string{"password", "verify", "correct-horse", hash}); err != nil {
		t.Fatalf("password verify: %v\n%s", err, out)
	}
	if _, err := executeCommand([]string{"password", "verify", "wrong", hash}); err == nil {
		t.Fatal("expected mismatch error")
	}

	out, err = executeCommand([]string{"password", "digest", "abc"})
	if err != nil || strings.TrimSpace(out) != password.SHA256("abc") {
		t.Fatalf("digest = %q, %v", out, err)
	}
}
