// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding/decoding, and request plumbing shared by the
// REST surface.
package httputil
