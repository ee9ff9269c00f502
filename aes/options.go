package aes

import (
	"github.com/go-logr/logr"

	"github.com/MrEthical07/goSecurity/metrics"
)

// Option configures a Cipher at construction.
type Option func(*Cipher)

// WithLogger sets the logger; the default discards.
func WithLogger(l logr.Logger) Option {
	return func(c *Cipher) {
		c.log = l
	}
}

// WithMetrics records encode and decode outcomes into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cipher) {
		c.metrics = m
	}
}
