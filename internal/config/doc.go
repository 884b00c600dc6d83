// Package config loads, normalizes, and validates stationctl configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: manager and encoder endpoints, the push feed URL, polling
// cadence, the encoding time-format policy, and local state directories.
//
// Always obtain settings through this package so downstream code receives
// sanitized URLs, expanded paths, and clear validation errors.
package config
