package goSecurity

import (
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/MrEthical07/goSecurity/aes"
	"github.com/MrEthical07/goSecurity/catalog"
	"github.com/MrEthical07/goSecurity/failure"
	"github.com/MrEthical07/goSecurity/jwt"
	"github.com/MrEthical07/goSecurity/metrics"
	"github.com/MrEthical07/goSecurity/password"
	"github.com/MrEthical07/goSecurity/rsa"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	PasswordBcrypt   = "bcrypt"
	PasswordArgon2id = "argon2id"
)

// Config is the file-level configuration. Field names follow the json tags of
// the component settings, so a YAML file reads:
//
//	aes:
//	  method: aes-256-cbc
//	rsa:
//	  urlPath: ./storage/keys/
//	  rsaPrivateKeyBits: 2048
//	jwt:
//	  jwtServerUrl: http://localhost:8000
//	  jwtDefaultMD: RS256
type Config struct {
	AES      aes.Settings   `json:"aes"`
	RSA      rsa.Settings   `json:"rsa"`
	JWT      TokenConfig    `json:"jwt"`
	Password PasswordConfig `json:"password"`
	KeyStore KeyStoreConfig `json:"keyStore"`
	Metrics  metrics.Config `json:"metrics"`
}

// TokenConfig extends jwt.Settings with options that are not part of the
// merge-able issuer settings. Secret is HMAC key material for HS* algorithms.
type TokenConfig struct {
	jwt.Settings

	Secret        string `json:"secret,omitempty"`
	KeyID         string `json:"kid,omitempty"`
	LeewaySeconds int    `json:"leewaySeconds,omitempty"`
	StrictClaims  bool   `json:"strictClaims,omitempty"`
}

// PasswordConfig picks the hashing algorithm and its parameters.
type PasswordConfig struct {
	Algorithm  string       `json:"algorithm"`
	BcryptCost int          `json:"bcryptCost,omitempty"`
	Argon2     Argon2Config `json:"argon2"`
}

// Argon2Config holds argon2id parameters. Memory is in KiB.
type Argon2Config struct {
	Memory      uint32 `json:"memory"`
	Time        uint32 `json:"time"`
	Parallelism uint8  `json:"parallelism"`
	SaltLength  uint32 `json:"saltLength"`
	KeyLength   uint32 `json:"keyLength"`
}

// KeyStoreConfig selects where RSA key files live. Redis is only dialled when
// Backend is "redis" and no client was given to the Builder.
type KeyStoreConfig struct {
	Backend string      `json:"backend"`
	Redis   RedisConfig `json:"redis"`
}

// RedisConfig is used to dial a client when none is supplied.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
}

// DefaultConfig returns the defaults every component starts from.
func DefaultConfig() Config {
	a := password.DefaultArgon2Config()
	return Config{
		AES: aes.Settings{Method: catalog.Default},
		RSA: rsa.DefaultSettings(),
		JWT: TokenConfig{Settings: jwt.DefaultSettings()},
		Password: PasswordConfig{
			Algorithm:  PasswordBcrypt,
			BcryptCost: password.DefaultBcryptCost,
			Argon2: Argon2Config{
				Memory:      a.Memory,
				Time:        a.Time,
				Parallelism: a.Parallelism,
				SaltLength:  a.SaltLength,
				KeyLength:   a.KeyLength,
			},
		},
		KeyStore: KeyStoreConfig{Backend: BackendFile},
		Metrics:  metrics.Config{Enabled: true},
	}
}

// LoadConfig reads a YAML or JSON file over DefaultConfig. Unknown fields are
// rejected.
func LoadConfig(path string) (Config, error) {
	const op = "config.load"
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, failure.Wrapf(failure.KindIO, op, err, "read %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, failure.Wrapf(failure.KindConfiguration, op, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parts of cfg that do not depend on key material. AES
// keys are checked when a cipher is configured.
func (c Config) Validate() error {
	const op = "config.validate"
	if c.AES.Method != "" {
		if _, err := catalog.Resolve(c.AES.Method); err != nil {
			return failure.Wrap(failure.KindConfiguration, op, err)
		}
	}
	if err := rsa.New().Config(c.RSA); err != nil {
		return err
	}
	if err := jwt.New().Configure(c.JWT.Settings); err != nil {
		return err
	}
	if c.JWT.LeewaySeconds < 0 {
		return failure.Newf(failure.KindConfiguration, op, "negative jwt leeway %d", c.JWT.LeewaySeconds)
	}
	if _, err := c.Password.hasher(); err != nil {
		return err
	}
	switch strings.ToLower(c.KeyStore.Backend) {
	case "", BackendFile, BackendRedis:
	default:
		return failure.Wrapf(failure.KindConfiguration, op, ErrUnknownBackend, "key store backend %q", c.KeyStore.Backend)
	}
	return nil
}

func (p PasswordConfig) hasher() (password.Hasher, error) {
	const op = "config.password"
	switch strings.ToLower(p.Algorithm) {
	case "", PasswordBcrypt:
		b := password.Bcrypt{Cost: p.BcryptCost}
		if err := b.Validate(); err != nil {
			return nil, failure.Wrapf(failure.KindConfiguration, op, err, "bcrypt cost %d", p.BcryptCost)
		}
		return b, nil
	case PasswordArgon2id:
		h, err := password.NewArgon2(password.Argon2Config{
			Memory:      p.Argon2.Memory,
			Time:        p.Argon2.Time,
			Parallelism: p.Argon2.Parallelism,
			SaltLength:  p.Argon2.SaltLength,
			KeyLength:   p.Argon2.KeyLength,
		})
		if err != nil {
			return nil, failure.Wrapf(failure.KindConfiguration, op, err, "argon2 parameters")
		}
		return h, nil
	default:
		return nil, failure.Wrapf(failure.KindConfiguration, op, ErrUnknownAlgorithm, "password algorithm %q", p.Algorithm)
	}
}
