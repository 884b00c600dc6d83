// Package snapshot persists the last known station collection so the
// dashboard can render something useful before the manager is reachable.
package snapshot
