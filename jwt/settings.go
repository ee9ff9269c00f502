package jwt

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer    = "http://localhost:8000"
	DefaultAudience  = "http://localhost:5173"
	DefaultTTL       = 3600
	DefaultAlgorithm = "RS256"

	// DefaultJTIBytes is the random length of a token id before base64.
	DefaultJTIBytes = 16
)

// ErrUnsupportedAlgorithm is returned by Configure for an unknown alg.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

var algorithms = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
	"RS256": jwt.SigningMethodRS256,
	"RS384": jwt.SigningMethodRS384,
	"RS512": jwt.SigningMethodRS512,
	"PS256": jwt.SigningMethodPS256,
	"PS384": jwt.SigningMethodPS384,
	"PS512": jwt.SigningMethodPS512,
	"ES256": jwt.SigningMethodES256,
	"ES384": jwt.SigningMethodES384,
	"ES512": jwt.SigningMethodES512,
	"EDDSA": jwt.SigningMethodEdDSA,
}

func signingMethod(alg string) (jwt.SigningMethod, bool) {
	m, ok := algorithms[strings.ToUpper(strings.TrimSpace(alg))]
	return m, ok
}

// Settings is the configuration shape of an Issuer. TTL is in seconds. The
// key fields are not serialized; inject them in code.
type Settings struct {
	Issuer    string `json:"jwtServerUrl"`
	Audience  string `json:"jwtServerUrlAud"`
	TTL       int    `json:"jwtExp"`
	Algorithm string `json:"jwtDefaultMD"`

	PrivateKey Material `json:"-"`
	PublicKey  Material `json:"-"`
}

// DefaultSettings returns the values a new Issuer starts from.
func DefaultSettings() Settings {
	return Settings{
		Issuer:    DefaultIssuer,
		Audience:  DefaultAudience,
		TTL:       DefaultTTL,
		Algorithm: DefaultAlgorithm,
	}
}

func (s Settings) merge(next Settings) Settings {
	if next.Issuer != "" {
		s.Issuer = next.Issuer
	}
	if next.Audience != "" {
		s.Audience = next.Audience
	}
	if next.TTL != 0 {
		s.TTL = next.TTL
	}
	if next.Algorithm != "" {
		s.Algorithm = next.Algorithm
	}
	if next.PrivateKey != nil {
		s.PrivateKey = next.PrivateKey
	}
	if next.PublicKey != nil {
		s.PublicKey = next.PublicKey
	}
	return s
}
