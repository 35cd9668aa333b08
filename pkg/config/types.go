package config

import (
	"time"

	"github.com/veesix-networks/netcfg/pkg/logger"
)

const DefaultPath = "/etc/netcfg/config.yaml"

type Config struct {
	Logging LoggingConfig  `json:"logging,omitempty" yaml:"logging,omitempty"`
	Switch  SwitchConfig   `json:"switch,omitempty" yaml:"switch,omitempty"`
	Configd EndpointConfig `json:"configd,omitempty" yaml:"configd,omitempty"`
	Notify  EndpointConfig `json:"notify,omitempty" yaml:"notify,omitempty"`
	Metrics MetricsConfig  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

type LoggingConfig struct {
	Format     string                     `json:"format,omitempty" yaml:"format,omitempty"`
	Level      logger.LogLevel            `json:"level,omitempty" yaml:"level,omitempty"`
	Components map[string]logger.LogLevel `json:"components,omitempty" yaml:"components,omitempty"`
}

type SwitchConfig struct {
	DescriptorPath string `json:"descriptor_path,omitempty" yaml:"descriptor_path,omitempty"`
}

type EndpointConfig struct {
	URL     string        `json:"url,omitempty" yaml:"url,omitempty"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// MetricsConfig.Textfile, when set, is a node_exporter textfile collector
// path written after each command.
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}
