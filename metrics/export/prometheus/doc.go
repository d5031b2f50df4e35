// Package prometheus renders goUX engine metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] wraps an Engine and exposes an [http.Handler].
// Counter names are goux_*_total; the single histogram is
// goux_tab_store_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate engine state.
package prometheus
