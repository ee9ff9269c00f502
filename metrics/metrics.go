package metrics

import (
	"sync/atomic"
	"time"
)

// ID identifies one counter.
type ID uint16

const (
	AESEncodeSuccess ID = iota
	AESEncodeFailure
	AESDecodeSuccess
	AESDecodeFailure
	RSACreateSuccess
	RSACreateFailure
	RSAInitSuccess
	RSAInitFailure
	RSAEncodeSuccess
	RSAEncodeFailure
	RSADecodeSuccess
	RSADecodeFailure
	TokenIssueSuccess
	TokenIssueFailure
	TokenVerifySuccess
	TokenVerifyFailure
	// TokenVerifyLatency is the only ID with a histogram.
	TokenVerifyLatency
	idCount
)

const (
	// BucketCount is the number of histogram buckets, the last one unbounded.
	BucketCount   = 8
	cacheLineSize = 64
)

// Config toggles collection.
type Config struct {
	Enabled                 bool `json:"enabled"`
	EnableLatencyHistograms bool `json:"enableLatencyHistograms"`
}

type histogram struct {
	buckets [BucketCount]uint64
	sumNs   uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of counters and one latency histogram.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [idCount]paddedCounter
	histograms    [idCount]histogram
}

// Snapshot is a point-in-time copy of all values.
type Snapshot struct {
	Counters   map[ID]uint64
	Histograms map[ID][]uint64
	// Sums holds the total observed duration per histogram.
	Sums map[ID]time.Duration
}

// New returns a Metrics collector configured by cfg.
func New(cfg Config) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled reports whether the latency histogram is recorded.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to id.
func (m *Metrics) Inc(id ID) {
	if m == nil || !m.enabled || id >= idCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Outcome increments ok when err is nil and fail otherwise.
func (m *Metrics) Outcome(err error, ok, fail ID) {
	if err != nil {
		m.Inc(fail)
		return
	}
	m.Inc(ok)
}

// Observe records d into the histogram for id.
func (m *Metrics) Observe(id ID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= idCount {
		return
	}
	if id != TokenVerifyLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
	if d > 0 {
		atomic.AddUint64(&m.histograms[id].sumNs, uint64(d))
	}
}

// Value returns the current count for id.
func (m *Metrics) Value(id ID) uint64 {
	if m == nil || id >= idCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter and, when enabled, the latency histogram.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil || !m.enabled {
		return Snapshot{
			Counters:   map[ID]uint64{},
			Histograms: map[ID][]uint64{},
			Sums:       map[ID]time.Duration{},
		}
	}

	s := Snapshot{
		Counters:   make(map[ID]uint64, int(idCount)),
		Histograms: make(map[ID][]uint64, 1),
		Sums:       make(map[ID]time.Duration, 1),
	}

	for id := ID(0); id < idCount; id++ {
		if id == TokenVerifyLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, BucketCount)
		for i := 0; i < BucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[TokenVerifyLatency].buckets[i])
		}
		s.Histograms[TokenVerifyLatency] = buckets
		s.Sums[TokenVerifyLatency] = time.Duration(atomic.LoadUint64(&m.histograms[TokenVerifyLatency].sumNs))
	}

	return s
}

// MetricsSnapshot lets a *Metrics serve directly as an exporter source.
func (m *Metrics) MetricsSnapshot() Snapshot {
	return m.Snapshot()
}

// Bounds are the histogram upper bounds in seconds; the final bucket is +Inf.
var Bounds = [BucketCount - 1]float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05}

func bucketIndex(d time.Duration) int {
	s := d.Seconds()
	for i, b := range Bounds {
		if s <= b {
			return i
		}
	}
	return BucketCount - 1
}
