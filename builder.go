package goSecurity

import (
	"context"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSecurity/aes"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/jwt"
	"github.com/MrEthical07/goSecurity/keystore"
	"github.com/MrEthical07/goSecurity/metrics"
	"github.com/MrEthical07/goSecurity/password"
	"github.com/MrEthical07/goSecurity/rsa"
)

// Builder assembles a Security from a Config. A Builder can be built once.
type Builder struct {
	config  Config
	store   keystore.Store
	redis   redis.UniversalClient
	log     logr.Logger
	metrics *metrics.Metrics

	built bool
}

// New returns a Builder holding DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
		log:    logr.Discard(),
	}
}

// WithConfig replaces the whole configuration. Build validates it.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithKeyStore overrides the store selected by Config.KeyStore.
func (b *Builder) WithKeyStore(s keystore.Store) *Builder {
	b.store = s
	return b
}

// WithRedis supplies the client used when Config.KeyStore.Backend is "redis".
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithLogger sets the logger handed to every component.
func (b *Builder) WithLogger(l logr.Logger) *Builder {
	b.log = l
	return b
}

// WithMetrics shares m instead of creating one from Config.Metrics.
func (b *Builder) WithMetrics(m *metrics.Metrics) *Builder {
	b.metrics = m
	return b
}

// Build validates the configuration and wires the shared store, metrics and
// logger. A Builder can be built once.
func (b *Builder) Build() (*Security, error) {
	const op = "builder.build"
	if b.built {
		return nil, failure.Wrap(failure.KindConfiguration, op, ErrBuilderUsed)
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hasher, err := cfg.Password.hasher()
	if err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if store, err = b.keyStore(cfg.KeyStore); err != nil {
			return nil, err
		}
	}

	m := b.metrics
	if m == nil {
		m = metrics.New(cfg.Metrics)
	}

	b.built = true
	b.log.V(1).Info("security built", "aes", cfg.AES.Method, "jwt", cfg.JWT.Algorithm, "keyStore", cfg.KeyStore.Backend)

	return &Security{
		config:  cfg,
		store:   store,
		hasher:  hasher,
		log:     b.log,
		metrics: m,
	}, nil
}

func (b *Builder) keyStore(cfg KeyStoreConfig) (keystore.Store, error) {
	const op = "builder.keystore"
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return keystore.FileStore{}, nil
	case BackendRedis:
		client := b.redis
		if client == nil {
			if cfg.Redis.Addr == "" {
				return nil, failure.Wrapf(failure.KindConfiguration, op, keystore.ErrNilClient, "redis key store needs keyStore.redis.addr")
			}
			client = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
		}
		s, err := keystore.NewRedisStore(client, cfg.Redis.Prefix)
		if err != nil {
			return nil, failure.Wrap(failure.KindConfiguration, op, err)
		}
		return s, nil
	default:
		return nil, failure.Wrapf(failure.KindConfiguration, op, ErrUnknownBackend, "key store backend %q", cfg.Backend)
	}
}

// Security hands out independently owned component instances that share one
// key store, logger and metrics set.
type Security struct {
	config  Config
	store   keystore.Store
	hasher  password.Hasher
	log     logr.Logger
	metrics *metrics.Metrics
}

func (s *Security) Config() Config {
	return s.config
}

func (s *Security) Metrics() *metrics.Metrics {
	return s.metrics
}

func (s *Security) KeyStore() keystore.Store {
	return s.store
}

// Hasher returns the password hasher selected by Config.Password.
func (s *Security) Hasher() password.Hasher {
	return s.hasher
}

// NewCipher returns a cipher. It is configured from Config.AES when a key is
// present, and unconfigured otherwise.
func (s *Security) NewCipher() (*aes.Cipher, error) {
	c := aes.New(aes.WithLogger(s.log.WithName("aes")), aes.WithMetrics(s.metrics))
	if s.config.AES.Key == "" {
		return c, nil
	}
	if err := c.Config(s.config.AES); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Security) NewKeyManager() (*rsa.Manager, error) {
	m := rsa.New(
		rsa.WithStore(s.store),
		rsa.WithLogger(s.log.WithName("rsa")),
		rsa.WithMetrics(s.metrics),
	)
	if err := m.Config(s.config.RSA); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Security) issuerOptions(extra ...jwt.Option) []jwt.Option {
	opts := []jwt.Option{
		jwt.WithLogger(s.log.WithName("jwt")),
		jwt.WithMetrics(s.metrics),
	}
	if s.config.JWT.KeyID != "" {
		opts = append(opts, jwt.WithKeyID(s.config.JWT.KeyID))
	}
	if s.config.JWT.LeewaySeconds > 0 {
		opts = append(opts, jwt.WithLeeway(time.Duration(s.config.JWT.LeewaySeconds)*time.Second))
	}
	if s.config.JWT.StrictClaims {
		opts = append(opts, jwt.WithStrictClaims())
	}
	return append(opts, extra...)
}

// NewIssuer returns an issuer from Config.JWT. When Config.JWT.Secret is set
// it becomes the HMAC material for both signing and verifying.
func (s *Security) NewIssuer() (*jwt.Issuer, error) {
	i := jwt.New(s.issuerOptions()...)
	settings := s.config.JWT.Settings
	if s.config.JWT.Secret != "" {
		settings.PrivateKey = jwt.Secret([]byte(s.config.JWT.Secret))
	}
	if err := i.Configure(settings); err != nil {
		return nil, err
	}
	return i, nil
}

// NewRSAIssuer returns an issuer signing with the private key of keys and
// verifying with its public key. The key id is derived from the public key
// unless Config.JWT.KeyID is set.
func (s *Security) NewRSAIssuer(ctx context.Context, keys *rsa.Manager) (*jwt.Issuer, error) {
	const op = "builder.rsa_issuer"
	if keys == nil {
		return nil, failure.Wrap(failure.KindConfiguration, op, ErrNoKeyManager)
	}
	settings := s.config.JWT.Settings
	switch alg := strings.ToUpper(settings.Algorithm); {
	case alg == "":
		settings.Algorithm = jwt.DefaultAlgorithm
	case !strings.HasPrefix(alg, "RS") && !strings.HasPrefix(alg, "PS"):
		return nil, failure.Wrapf(failure.KindConfiguration, op, ErrUnsupportedAlgorithm, "rsa keys cannot sign %q", settings.Algorithm)
	}

	priv, err := keys.PrivateKey(ctx)
	if err != nil {
		return nil, err
	}
	pub, err := keys.PublicKey(ctx)
	if err != nil {
		return nil, err
	}

	var extra []jwt.Option
	if s.config.JWT.KeyID == "" {
		kid, err := keys.KeyID(ctx)
		if err != nil {
			return nil, err
		}
		extra = append(extra, jwt.WithKeyID(kid))
	}

	settings.PrivateKey = jwt.PrivateKey(priv)
	settings.PublicKey = jwt.PublicKey(pub)

	i := jwt.New(s.issuerOptions(extra...)...)
	if err := i.Configure(settings); err != nil {
		return nil, err
	}
	return i, nil
}
