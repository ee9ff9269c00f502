// Package prometheus exposes goSecurity counters through a client_golang Collector.
//
// [NewExporter] reads a metrics snapshot on every scrape; [Exporter.Handler] serves
// a private registry containing only these series.
package prometheus
