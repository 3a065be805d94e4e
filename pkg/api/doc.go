// Package api provides the HTTP surface of the sflow server: the four
// authentication endpoints (machine API-key login, password login, the
// session-cookie probe, logout) and the server wiring that mounts them
// behind the cross-origin gate.
package api
