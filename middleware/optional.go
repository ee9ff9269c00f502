package middleware

import (
	"net/http"

	"github.com/MrEthical07/goSecurity/jwt"
)

// OptionalToken behaves like RequireToken when an Authorization bearer header
// is present and otherwise calls next without claims.
func OptionalToken(issuer *jwt.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		guarded := RequireToken(issuer)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := jwt.BearerFromRequest(r); !ok {
				next.ServeHTTP(w, r)
				return
			}
			guarded.ServeHTTP(w, r)
		})
	}
}
