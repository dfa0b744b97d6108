// Package telemetry wraps OpenTelemetry SDK setup for distributed traces.
// When telemetry is disabled, no exporter is created and the global tracer
// provider remains noop.
package telemetry
