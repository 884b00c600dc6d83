// Package api is the typed HTTP client for the station manager and encoding
// queue REST surfaces.
//
// One Client wraps one base URL; the CLI holds a manager client and an
// encoder client that may point at the same host. Every request carries a
// correlation identifier and a bounded timeout, transport failures wrap with
// context, and encoding endpoints that report errors in their JSON envelope
// surface them as Go errors.
package api
