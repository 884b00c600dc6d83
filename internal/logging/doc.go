// Package logging builds the slog loggers used across stationctl.
//
// It provides a human-oriented console handler for interactive use and a JSON
// handler for machine consumption, plus the standardized structured field
// keys shared by every component. Construct loggers through New or
// NewFromConfig so output format and level stay consistent with the loaded
// configuration.
package logging
