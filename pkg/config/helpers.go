package config

import (
	"strconv"
	"time"

	"github.com/glorpus-work/kiara-onboarding/pkg/errors"
)

// SetValue sets a configuration value by key.
// Supported keys:
//   - scratch_dir: string - Base directory for scratch storage
//   - hooks_dir: string - Directory holding hook scripts
//   - http_timeout: duration - Timeout for HTTP requests (e.g. 30s)
//   - user_agent: string - User-Agent header for outgoing requests
//   - zenodo_base_url: string - Base URL of the Zenodo instance
//   - attach_metadata: bool - Whether to attach provenance metadata
//   - output_format: string - Output format (text, json)
//   - log_level: string - Logging level (debug, info, warn, error)
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "scratch_dir":
		c.Settings.ScratchDir = value
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration value for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "user_agent":
		c.Settings.UserAgent = value
	case "zenodo_base_url":
		c.Settings.ZenodoBaseURL = value
	case "attach_metadata":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid boolean value for %s: %s", key, value)
		}
		c.Settings.AttachMetadata = boolVal
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return errors.Wrapf(errors.ErrConfigKeyNotFound, "unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns a configuration value by key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "scratch_dir":
		return c.Settings.ScratchDir, nil
	case "hooks_dir":
		return c.Settings.HooksDir, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "user_agent":
		return c.Settings.UserAgent, nil
	case "zenodo_base_url":
		return c.Settings.ZenodoBaseURL, nil
	case "attach_metadata":
		return strconv.FormatBool(c.Settings.AttachMetadata), nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	default:
		return "", errors.Wrapf(errors.ErrConfigKeyNotFound, "unknown configuration key: %s", key)
	}
}

// ToMap returns the settings as a flat string map for display.
func (c *Config) ToMap() map[string]string {
	return map[string]string{
		"scratch_dir":     c.Settings.ScratchDir,
		"hooks_dir":       c.Settings.HooksDir,
		"http_timeout":    c.Settings.HTTPTimeout.String(),
		"user_agent":      c.Settings.UserAgent,
		"zenodo_base_url": c.Settings.ZenodoBaseURL,
		"attach_metadata": strconv.FormatBool(c.Settings.AttachMetadata),
		"output_format":   c.Settings.OutputFormat,
		"log_level":       c.Settings.LogLevel,
	}
}
