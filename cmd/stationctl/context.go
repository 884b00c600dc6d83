package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"stationctl/internal/api"
	"stationctl/internal/config"
	"stationctl/internal/logging"
)

type commandContext struct {
	configFlag  *string
	managerFlag *string
	encoderFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, managerFlag, encoderFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		managerFlag: managerFlag,
		encoderFlag: encoderFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) managerURL() (string, error) {
	if c.managerFlag != nil && strings.TrimSpace(*c.managerFlag) != "" {
		return strings.TrimSpace(*c.managerFlag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Manager.URL, nil
}

func (c *commandContext) pushURL() (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Manager.PushURL, nil
}

func (c *commandContext) encoderURL() (string, error) {
	if c.encoderFlag != nil && strings.TrimSpace(*c.encoderFlag) != "" {
		return strings.TrimSpace(*c.encoderFlag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return cfg.Encoder.URL, nil
}

func (c *commandContext) managerClient() (*api.Client, error) {
	baseURL, err := c.managerURL()
	if err != nil {
		return nil, err
	}
	return c.newClient(baseURL), nil
}

func (c *commandContext) encoderClient() (*api.Client, error) {
	baseURL, err := c.encoderURL()
	if err != nil {
		return nil, err
	}
	return c.newClient(baseURL), nil
}

func (c *commandContext) newClient(baseURL string) *api.Client {
	opts := []api.Option{api.WithLogger(c.ensureLogger())}
	if cfg, err := c.ensureConfig(); err == nil {
		opts = append(opts, api.WithTimeout(cfg.RequestTimeout()))
	}
	return api.NewClient(baseURL, opts...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
