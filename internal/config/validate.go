package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateManager(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateManager() error {
	if strings.TrimSpace(c.Manager.URL) == "" {
		return errors.New("manager.url must be set")
	}
	if err := validateHTTPURL("manager.url", c.Manager.URL); err != nil {
		return err
	}
	if c.Manager.PushURL != "" {
		parsed, err := url.Parse(c.Manager.PushURL)
		if err != nil {
			return fmt.Errorf("manager.push_url is not a valid URL: %w", err)
		}
		if parsed.Scheme != "ws" && parsed.Scheme != "wss" {
			return fmt.Errorf("manager.push_url must use ws or wss, got %q", parsed.Scheme)
		}
	}
	if c.Manager.RequestTimeout < 0 {
		return errors.New("manager.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateEncoder() error {
	if c.Encoder.URL == "" {
		return nil
	}
	return validateHTTPURL("encoder.url", c.Encoder.URL)
}

func (c *Config) validateEncoding() error {
	switch c.Encoding.TimePolicy {
	case "skip-empty", "always":
		return nil
	default:
		return fmt.Errorf("encoding.time_policy: unsupported value %q (use skip-empty or always)", c.Encoding.TimePolicy)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateHTTPURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", field)
	}
	return nil
}
