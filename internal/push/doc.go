// Package push subscribes to the manager's websocket feed of station
// change events.
package push
