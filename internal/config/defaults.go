package config

const (
	defaultManagerURL         = "http://127.0.0.1:3000"
	defaultPushURL            = "ws://127.0.0.1:5001/events"
	defaultRequestTimeout     = 10
	defaultStatusPollInterval = 1
	defaultTimePolicy         = "skip-empty"
	defaultStateDir           = "~/.local/share/stationctl/state"
	defaultLogDir             = "~/.local/share/stationctl/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Manager: Manager{
			URL:            defaultManagerURL,
			PushURL:        defaultPushURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Workflow: Workflow{
			StatusPollInterval: defaultStatusPollInterval,
		},
		Encoding: Encoding{
			TimePolicy: defaultTimePolicy,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
