// Package observability defines the hook through which components report the
// operations they perform. The metrics package provides a Prometheus-backed
// Observer; tests typically record the operations in memory.
package observability
