package rsa

import (
	"github.com/go-logr/logr"

	"github.com/MrEthical07/goSecurity/keystore"
	"github.com/MrEthical07/goSecurity/metrics"
)

// Option configures a Manager at construction.
type Option func(*Manager)

// WithStore replaces the default keystore.FileStore.
func WithStore(s keystore.Store) Option {
	return func(m *Manager) {
		if s != nil {
			m.store = s
		}
	}
}

// WithLogger sets the logger; the default discards.
func WithLogger(l logr.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithMetrics records operation outcomes into mt.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}
