package jwt

import (
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc", "abc", true},
		{"BEARER\tabc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer abc trailing", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Bearerabc", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := BearerToken(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("BearerToken(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBearerFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := BearerFromRequest(r); ok {
		t.Fatalf("missing header should report false")
	}
	r.Header.Set("Authorization", "Bearer tok")
	if got, ok := BearerFromRequest(r); !ok || got != "tok" {
		t.Fatalf("BearerFromRequest = %q, %v", got, ok)
	}
	if _, ok := BearerFromRequest(nil); ok {
		t.Fatalf("nil request should report false")
	}
}
