// Package config loads application configuration from environment
// variables and holds the dynamic runtime settings (sflow API key,
// owner-setup flag) that may be reloaded while the server is running.
//
// Static configuration is read once at startup and validated; dynamic
// settings live in a Runtime store whose readers always see the current
// value, so a reload takes effect on the next request without a restart.
package config
