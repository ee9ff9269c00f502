package jwt

import (
	"net/http"
	"strings"
)

const bearerScheme = "Bearer"

// BearerToken extracts the token from an Authorization value of the form
// "Bearer <token>". The scheme is matched case-insensitively. Anything else
// reports false.
func BearerToken(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) <= len(bearerScheme) || !strings.EqualFold(value[:len(bearerScheme)], bearerScheme) {
		return "", false
	}
	rest := value[len(bearerScheme):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// BearerFromRequest reads the Authorization header of r.
func BearerFromRequest(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	return BearerToken(r.Header.Get("Authorization"))
}
