package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veesix-networks/netcfg/pkg/logger"
	"github.com/veesix-networks/netcfg/pkg/switchcfg"
)

const (
	defaultConfigdURL     = "http://127.0.0.1:8080/configd"
	defaultConfigdTimeout = 5 * time.Second
	defaultNotifyURL      = "http://127.0.0.1:8080/vci"
	defaultNotifyTimeout  = 2 * time.Second
)

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path, falling back to defaults when the file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logger.LogLevelInfo
	}
	if c.Switch.DescriptorPath == "" {
		c.Switch.DescriptorPath = switchcfg.DefaultPath
	}
	if c.Configd.URL == "" {
		c.Configd.URL = defaultConfigdURL
	}
	if c.Configd.Timeout == 0 {
		c.Configd.Timeout = defaultConfigdTimeout
	}
	if c.Notify.URL == "" {
		c.Notify.URL = defaultNotifyURL
	}
	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = defaultNotifyTimeout
	}
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got '%s'", c.Logging.Format)
	}

	if err := validateLevel("logging.level", c.Logging.Level); err != nil {
		return err
	}
	for name, level := range c.Logging.Components {
		if err := validateLevel("logging.components."+name, level); err != nil {
			return err
		}
	}

	if err := validateEndpoint("configd", c.Configd); err != nil {
		return err
	}
	if err := validateEndpoint("notify", c.Notify); err != nil {
		return err
	}

	return nil
}

func validateLevel(field string, level logger.LogLevel) error {
	switch strings.ToLower(string(level)) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("%s: unknown level '%s'", field, level)
}

func validateEndpoint(field string, ep EndpointConfig) error {
	u, err := url.Parse(ep.URL)
	if err != nil {
		return fmt.Errorf("%s.url: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s.url: unsupported scheme '%s'", field, u.Scheme)
	}
	if ep.Timeout < 0 {
		return fmt.Errorf("%s.timeout must not be negative", field)
	}
	return nil
}
