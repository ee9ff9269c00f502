package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MrEthical07/goSecurity/jwt"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the claims stored by RequireToken or OptionalToken.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	c, ok := ctx.Value(claimsContextKey{}).(*jwt.Claims)
	return c, ok
}

// WithClaims returns a copy of ctx carrying c.
func WithClaims(ctx context.Context, c *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, c)
}

func RequireToken(issuer *jwt.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if issuer == nil {
				writeError(w, jwt.Result{Err: &jwt.Error{
					Code:    http.StatusInternalServerError,
					Status:  jwt.StatusError,
					Message: jwt.MsgPublicKeyMissing,
				}})
				return
			}

			// A missing or non-bearer header decodes as an absent token.
			token, _ := jwt.BearerFromRequest(r)
			res := issuer.Decode(token)
			if !res.OK() {
				writeError(w, res)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), res.Claims)))
		})
	}
}

func writeError(w http.ResponseWriter, res jwt.Result) {
	w.Header().Set("Content-Type", "application/json")
	if res.Err.Code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	w.WriteHeader(res.Err.Code)
	_ = json.NewEncoder(w).Encode(res)
}
