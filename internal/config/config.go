// Package config loads and validates NetAtlas configuration from YAML files
// with koanf, and owns the named default policy applied during hierarchy
// assembly (availability-zone fallback label, subnet exposure assumption).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/netatlas/netatlas/internal/topology"
)

// Config holds all configuration for the application.
type Config struct {
	// APIPort is the port the API server listens on.
	APIPort int `koanf:"api_port" yaml:"api_port"`

	// LogLevel is the logging level (debug, info, warn, error, fatal).
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// UpstreamURL is the base URL of the topology scanner service.
	UpstreamURL string `koanf:"upstream_url" yaml:"upstream_url"`

	// UpstreamTimeout bounds a single snapshot fetch.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout" yaml:"upstream_timeout"`

	// SnapshotCacheSize is the maximum number of cached topology snapshots.
	SnapshotCacheSize int `koanf:"snapshot_cache_size" yaml:"snapshot_cache_size"`

	// SnapshotCacheTTL is how long a cached snapshot stays fresh.
	SnapshotCacheTTL time.Duration `koanf:"snapshot_cache_ttl" yaml:"snapshot_cache_ttl"`

	Tracing  TracingConfig  `koanf:"tracing" yaml:"tracing"`
	Defaults DefaultsConfig `koanf:"defaults" yaml:"defaults"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled     bool   `koanf:"enabled" yaml:"enabled"`
	Endpoint    string `koanf:"endpoint" yaml:"endpoint"`
	TLSCAPath   string `koanf:"tls_ca_path" yaml:"tls_ca_path"`
	TLSInsecure bool   `koanf:"tls_insecure" yaml:"tls_insecure"`
}

// DefaultsConfig names the fallback values used during hierarchy assembly.
// Keeping them in configuration makes default policy auditable instead of
// burying literals in the algorithm.
type DefaultsConfig struct {
	// Zone is the availability-zone label applied to subnets that carry none.
	Zone string `koanf:"zone" yaml:"zone"`
	// SubnetPublic is the exposure assumed for subnets with no explicit flag.
	SubnetPublic bool `koanf:"subnet_public" yaml:"subnet_public"`
}

// Policy converts the configured defaults into the core's policy value.
func (d DefaultsConfig) Policy() topology.Defaults {
	return topology.Defaults{
		Zone:         d.Zone,
		SubnetPublic: d.SubnetPublic,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIPort:           8080,
		LogLevel:          "info",
		UpstreamURL:       "http://localhost:9000",
		UpstreamTimeout:   30 * time.Second,
		SnapshotCacheSize: 16,
		SnapshotCacheTTL:  30 * time.Second,
		Defaults: DefaultsConfig{
			Zone:         "unknown",
			SubnetPublic: true,
		},
	}
}

// Load reads configuration from the YAML file at path, layered over the
// built-in defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535, got %d", c.APIPort)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream_timeout must be positive, got %v", c.UpstreamTimeout)
	}
	if c.SnapshotCacheSize < 1 {
		return fmt.Errorf("snapshot_cache_size must be at least 1, got %d", c.SnapshotCacheSize)
	}
	if c.SnapshotCacheTTL <= 0 {
		return fmt.Errorf("snapshot_cache_ttl must be positive, got %v", c.SnapshotCacheTTL)
	}
	if c.Defaults.Zone == "" {
		return fmt.Errorf("defaults.zone must not be empty")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("tracing.endpoint must be set when tracing is enabled")
	}
	return nil
}

// WriteDefault writes the built-in configuration to path as YAML, giving new
// deployments a starter file to edit.
func WriteDefault(path string) error {
	data, err := yamlv3.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
