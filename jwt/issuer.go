package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/internal"
	"github.com/MrEthical07/goSecurity/metrics"
)

var (
	ErrTokenMissing      = errors.New("token does not exist")
	ErrPrivateKeyMissing = errors.New("private signing material is not configured")
	ErrPublicKeyMissing  = errors.New("verification material is not configured")
	ErrUnknownKeyID      = errors.New("unknown kid")
	ErrInvalidTTL        = errors.New("invalid ttl")
)

// Issuer builds and verifies tokens for one configuration. It is not safe for
// concurrent use.
type Issuer struct {
	settings Settings
	method   jwt.SigningMethod
	keyID    string
	leeway   time.Duration
	strict   bool
	now      func() time.Time

	log     logr.Logger
	metrics *metrics.Metrics
}

// Option configures an Issuer at construction.
type Option func(*Issuer)

// WithLogger sets the logger; the default discards.
func WithLogger(l logr.Logger) Option {
	return func(i *Issuer) { i.log = l }
}

// WithMetrics records issue and verify outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(i *Issuer) { i.metrics = m }
}

// WithKeyID stamps kid into every header and requires it on decode.
func WithKeyID(kid string) Option {
	return func(i *Issuer) { i.keyID = strings.TrimSpace(kid) }
}

// WithLeeway tolerates clock skew on exp, nbf, and iat.
func WithLeeway(d time.Duration) Option {
	return func(i *Issuer) {
		if d > 0 {
			i.leeway = d
		}
	}
}

// WithStrictClaims makes Decode require iss and aud to equal the configured values.
func WithStrictClaims() Option {
	return func(i *Issuer) { i.strict = true }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// New returns an Issuer with DefaultSettings and no key material.
func New(opts ...Option) *Issuer {
	i := &Issuer{
		settings: DefaultSettings(),
		method:   jwt.SigningMethodRS256,
		now:      time.Now,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Configure merges s into the current settings. Empty fields and nil key
// material leave the current values in place. On error nothing changes.
func (i *Issuer) Configure(s Settings) error {
	const op = "jwt.configure"
	next := i.settings.merge(s)
	method, ok := signingMethod(next.Algorithm)
	if !ok {
		return failure.Wrapf(failure.KindConfiguration, op, ErrUnsupportedAlgorithm, "%s: %q", MsgUnsupportedAlgName, next.Algorithm)
	}
	if next.TTL < 0 {
		return failure.Wrapf(failure.KindConfiguration, op, ErrInvalidTTL, "ttl %d", next.TTL)
	}
	next.Algorithm = method.Alg()
	i.settings = next
	i.method = method
	return nil
}

// Settings returns the effective configuration including key material.
func (i *Issuer) Settings() Settings {
	return i.settings
}

// Reset restores DefaultSettings and drops key material. Options given to New
// are kept.
func (i *Issuer) Reset() {
	i.settings = DefaultSettings()
	i.method = jwt.SigningMethodRS256
}

// Encode signs a token carrying data. ttlOverride replaces the configured TTL
// when non-zero; jtiBytes sets the random length of the token id and defaults
// to DefaultJTIBytes when not positive.
func (i *Issuer) Encode(data map[string]any, ttlOverride, jtiBytes int) Result {
	const op = "jwt.encode"
	token, err := i.encode(op, data, ttlOverride, jtiBytes)
	i.metrics.Outcome(err, metrics.TokenIssueSuccess, metrics.TokenIssueFailure)
	if err != nil {
		res := errorResult(op, err)
		i.log.V(1).Info("token not issued", "kind", res.Err.Kind.String(), "reason", res.Err.Message)
		return res
	}
	i.log.V(1).Info("token issued", "alg", i.method.Alg())
	return Result{Token: token}
}

func (i *Issuer) encode(op string, data map[string]any, ttlOverride, jtiBytes int) (string, error) {
	if i.settings.PrivateKey == nil {
		return "", failure.Wrapf(failure.KindConfiguration, op, ErrPrivateKeyMissing, "%s", MsgPrivateKeyMissing)
	}
	key, err := i.settings.PrivateKey.signingKey(i.method)
	if err != nil {
		return "", err
	}

	if jtiBytes <= 0 {
		jtiBytes = DefaultJTIBytes
	}
	jti, err := internal.RandomBase64(jtiBytes)
	if err != nil {
		return "", failure.Wrapf(failure.KindCryptographic, op, err, "generate jti")
	}

	ttl := i.settings.TTL
	if ttlOverride != 0 {
		ttl = ttlOverride
	}
	now := i.now().Truncate(time.Second)
	if data == nil {
		data = map[string]any{}
	}
	claims := &Claims{
		Issuer:    i.settings.Issuer,
		Audience:  i.settings.Audience,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttl) * time.Second)),
		Data:      data,
	}

	token := jwt.NewWithClaims(i.method, claims)
	if i.keyID != "" {
		token.Header["kid"] = i.keyID
	}
	return token.SignedString(key)
}

// IsMissingToken reports whether raw stands for an absent token: empty, or
// the literal text "null" that serialized nulls turn into.
func IsMissingToken(raw string) bool {
	t := strings.TrimSpace(raw)
	return t == "" || t == "null"
}

// Decode verifies raw and returns its claims. Missing tokens are rejected
// before any key is consulted.
func (i *Issuer) Decode(raw string) Result {
	const op = "jwt.decode"
	start := time.Now()
	claims, err := i.decode(op, raw)
	i.metrics.Observe(metrics.TokenVerifyLatency, time.Since(start))
	i.metrics.Outcome(err, metrics.TokenVerifySuccess, metrics.TokenVerifyFailure)
	if err != nil {
		res := errorResult(op, err)
		i.log.V(1).Info("token rejected", "kind", res.Err.Kind.String(), "reason", res.Err.Message)
		return res
	}
	return Result{Claims: claims}
}

func (i *Issuer) decode(op, raw string) (*Claims, error) {
	if IsMissingToken(raw) {
		return nil, failure.Wrapf(failure.KindTokenValidity, op, ErrTokenMissing, "%s", MsgTokenMissing)
	}
	material := i.settings.PublicKey
	if material == nil {
		material = i.settings.PrivateKey
	}
	if material == nil {
		return nil, failure.Wrapf(failure.KindConfiguration, op, ErrPublicKeyMissing, "%s", MsgPublicKeyMissing)
	}
	key, err := material.verifyingKey(i.method)
	if err != nil {
		return nil, classify(op, err)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.leeway > 0 {
		options = append(options, jwt.WithLeeway(i.leeway))
	}
	if i.strict {
		options = append(options, jwt.WithIssuer(i.settings.Issuer), jwt.WithAudience(i.settings.Audience))
	}

	claims := &Claims{}
	token, err := jwt.NewParser(options...).ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
		if i.keyID != "" {
			kid, _ := t.Header["kid"].(string)
			if kid != i.keyID {
				return nil, failure.Wrapf(failure.KindTokenValidity, op, ErrUnknownKeyID, "Token key id is not accepted")
			}
		}
		return key, nil
	})
	if err != nil {
		return nil, classify(op, err)
	}
	if !token.Valid {
		return nil, classify(op, jwt.ErrTokenInvalidClaims)
	}
	return claims, nil
}
