// Package observability provides logging and Prometheus metrics for the validator.
//
// # Overview
//
// Logging uses logrus with a plain text formatter on stderr, so that
// interactive diagnostics on stdout stay clean. Metrics are collected in a
// run-scoped prometheus.Registry and can be written in the node_exporter
// textfile format at the end of a run.
//
// # Logging
//
//	logger := observability.NewLogger(observability.WarnLevel, os.Stderr)
//	logger.WithField("url", vocabURL).Warnf("vocabulary fetch failed: %v", err)
//
// # Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordFinding("SCHEMA001")
//	_ = observability.WriteTextfile(registry, "schema_validator.prom")
//
// A nil *Metrics is accepted everywhere and records nothing.
//
// # Related Packages
//
//   - pkg/config: Log level and paths
//   - pkg/cli: Wires logger and metrics into a run
package observability
