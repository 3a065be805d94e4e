// Package middleware provides the HTTP middleware for the sflow server:
// the cross-origin access gate that runs on every request, and the
// session middleware guarding cookie-protected routes.
package middleware
