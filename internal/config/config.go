// Package config loads the statekit.json configuration for the live bridge
// and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/statekit-dev/statekit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "statekit.json"

	// DefaultPort is the default bridge port.
	DefaultPort = 4000

	// DefaultHost is the default bridge host.
	DefaultHost = "localhost"

	// DefaultMetricsNamespace is the default Prometheus namespace.
	DefaultMetricsNamespace = "statekit"
)

// Config represents the complete statekit.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Host is the host the bridge binds to.
	Host string `json:"host,omitempty"`

	// Port is the port the bridge listens on.
	Port int `json:"port,omitempty"`

	// MetricsNamespace is the Prometheus metrics namespace.
	MetricsNamespace string `json:"metricsNamespace,omitempty"`

	// Fields maps state field names to their initial values. Each
	// connection gets its own container built from this map.
	Fields map[string]any `json:"fields,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		MetricsNamespace: DefaultMetricsNamespace,
		Fields:           map[string]any{},
	}
}

// Load reads configuration from the specified directory.
// It looks for statekit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CategoryConfig, "no %s found in %s", ConfigFileName, filepath.Dir(path))
		}
		return nil, errors.Wrap(err, errors.CategoryConfig, "reading "+ConfigFileName)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, "parsing "+ConfigFileName)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, "encoding "+ConfigFileName)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, "writing "+ConfigFileName)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Addr returns the host:port address the bridge binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Newf(errors.CategoryConfig, "port %d out of range", c.Port)
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = DefaultMetricsNamespace
	}
	if c.Fields == nil {
		c.Fields = map[string]any{}
	}
}
