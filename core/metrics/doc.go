// Package metrics defines the sinks that record assignment runs. A sink must
// record run summaries; optional interfaces cover per-demand fulfilment,
// tutor load, underfilled demand and roster publication. Sinks are built
// from configuration through NewMetricsSink and several configured sinks are
// combined in a MultiSink.
package metrics
