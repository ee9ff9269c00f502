// Package goSecurity wires the AES cipher, RSA key manager, JWT issuer and
// password hasher from one [Config].
//
// The component packages ([aes], [rsa], [jwt], [password]) are usable on
// their own. This package adds configuration loading and a [Builder] that
// shares a key store, a logger and one [metrics.Metrics] across the
// instances it hands out:
//
//	sec, err := goSecurity.New().WithConfig(cfg).Build()
//	keys, _ := sec.NewKeyManager()
//	_ = keys.Create(ctx, "")
//	issuer, _ := sec.NewRSAIssuer(ctx, keys)
//	res := issuer.Encode(map[string]any{"user": "sleon"}, 0, 16)
//
// Every instance is owned by one caller at a time. Build a new one per
// logical session instead of sharing a configured cipher across goroutines.
//
// # Architecture boundaries
//
// Sub-packages never import goSecurity. Errors are classified by the
// [failure] package and re-exported here so callers need a single import
// for errors.Is checks.
package goSecurity
