// Package metrics holds the in-process operation counters shared by the cipher,
// key manager, and token issuer.
//
// Counters are lock-free atomics padded to a cache line. A nil *Metrics is valid
// and records nothing, so components can be built without metrics.
//
// [Metrics.Snapshot] is the read side used by the exporters under metrics/export.
package metrics
