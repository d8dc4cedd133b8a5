package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Media   MediaConfig   `yaml:"media"`
}

type ServerConfig struct {
	Port          int    `yaml:"port" default:"8000"`
	LogLevel      string `yaml:"log_level" default:"info"`
	RatePerSecond int    `yaml:"rate_per_second" default:"100"`
	Burst         int    `yaml:"burst" default:"200"`
}

type StorageConfig struct {
	Mode            string `yaml:"mode" default:"local"` // local | s3 | azure
	SourceContainer string `yaml:"source_container" default:"assets"`
	CacheContainer  string `yaml:"cache_container" default:"assetsoutput"`

	Local LocalConfig `yaml:"local"`
	S3    S3Config    `yaml:"s3"`
	Azure AzureConfig `yaml:"azure"`
}

type LocalConfig struct {
	Path string `yaml:"path"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

type AzureConfig struct {
	// ConnectionString is a credential and only ever comes from the
	// environment, never from a config file.
	ConnectionString string `yaml:"-"`

	// ServiceURL selects DefaultAzureCredential auth instead of a
	// connection string.
	ServiceURL string `yaml:"service_url"`
}

type MediaConfig struct {
	// Placeholder is the fallback source served when a requested source is
	// missing. It must exist in the source container.
	Placeholder string `yaml:"placeholder" default:"no-image.jpg"`

	// DefaultSource substitutes filenames that carry no extension.
	DefaultSource string `yaml:"default_source" default:"no-image.jpg"`

	// ResizePolicy is "fit" (shrink-only bounding box) or "exact".
	ResizePolicy string `yaml:"resize_policy" default:"fit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          8000,
			LogLevel:      "info",
			RatePerSecond: 100,
			Burst:         200,
		},
		Storage: StorageConfig{
			Mode:            "local",
			SourceContainer: "assets",
			CacheContainer:  "assetsoutput",
			Local: LocalConfig{
				Path: "/tmp/pixelvault-data",
			},
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Media: MediaConfig{
			Placeholder:   "no-image.jpg",
			DefaultSource: "no-image.jpg",
			ResizePolicy:  "fit",
		},
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file at path, then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is runnable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Storage.Mode {
	case "local":
		if c.Storage.Local.Path == "" {
			return fmt.Errorf("local storage mode requires a path")
		}
	case "s3":
		if c.Storage.S3.AccessKey == "" || c.Storage.S3.SecretKey == "" {
			return fmt.Errorf("s3 storage mode requires access and secret keys")
		}
	case "azure":
		if c.Storage.Azure.ConnectionString == "" && c.Storage.Azure.ServiceURL == "" {
			return fmt.Errorf("azure storage mode requires AZURE_STORAGE_CONNECTION_STRING or a service URL")
		}
	default:
		return fmt.Errorf("invalid storage mode: %q", c.Storage.Mode)
	}

	if c.Storage.SourceContainer == "" || c.Storage.CacheContainer == "" {
		return fmt.Errorf("source and cache containers must be named")
	}
	if c.Media.Placeholder == "" {
		return fmt.Errorf("placeholder asset must be named")
	}
	return nil
}
