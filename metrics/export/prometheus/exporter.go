package prometheus

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrEthical07/goSecurity/metrics"
	"github.com/MrEthical07/goSecurity/metrics/export/internaldefs"
)

// ErrNilSource is returned when the exporter has nothing to read from.
var ErrNilSource = errors.New("nil metrics source")

// Source is anything that can produce a snapshot; *metrics.Metrics satisfies it.
type Source interface {
	MetricsSnapshot() metrics.Snapshot
}

type counterDesc struct {
	id   metrics.ID
	desc *prometheus.Desc
}

// Exporter is a prometheus.Collector over a Source.
type Exporter struct {
	source     Source
	counters   []counterDesc
	histograms []counterDesc
}

var _ prometheus.Collector = (*Exporter)(nil)

// NewExporter builds a collector reading from source.
func NewExporter(source Source) (*Exporter, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	e := &Exporter{
		source:     source,
		counters:   make([]counterDesc, 0, len(internaldefs.CounterDefs)),
		histograms: make([]counterDesc, 0, len(internaldefs.HistogramDefs)),
	}
	for _, def := range internaldefs.CounterDefs {
		e.counters = append(e.counters, counterDesc{id: def.ID, desc: prometheus.NewDesc(def.Name, def.Help, nil, nil)})
	}
	for _, def := range internaldefs.HistogramDefs {
		e.histograms = append(e.histograms, counterDesc{id: def.ID, desc: prometheus.NewDesc(def.Name, def.Help, nil, nil)})
	}
	return e, nil
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range e.counters {
		ch <- c.desc
	}
	for _, h := range e.histograms {
		ch <- h.desc
	}
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	snapshot := e.source.MetricsSnapshot()
	for _, c := range e.counters {
		ch <- prometheus.MustNewConstMetric(c.desc, prometheus.CounterValue, float64(snapshot.Counters[c.id]))
	}
	for _, h := range e.histograms {
		cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[h.id]))
		buckets := make(map[float64]uint64, len(metrics.Bounds))
		for i, bound := range metrics.Bounds {
			buckets[bound] = cumulative[i]
		}
		count := cumulative[len(cumulative)-1]
		ch <- prometheus.MustNewConstHistogram(h.desc, count, snapshot.Sums[h.id].Seconds(), buckets)
	}
}

// Handler serves the exporter from a dedicated registry.
func (e *Exporter) Handler() (http.Handler, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(e); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
