// Package observability provides Prometheus metrics, health probes, and
// graceful shutdown for the sflow server.
package observability
