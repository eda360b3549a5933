// Package telemetry holds the observability plumbing shared by the solver and
// the CLI: Prometheus metrics for trials, an OpenTelemetry stdout trace
// pipeline, and slog helpers that stamp trace identifiers on log records.
//
// Nothing here is required for solving; every hook is optional and nil-safe.
package telemetry
