// Command stationctl is a terminal dashboard for the station manager and
// encoding queue: it lists and configures stations, dispatches process
// commands, watches health, and drives the encode workflow.
package main
