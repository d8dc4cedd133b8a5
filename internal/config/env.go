package config

import (
	"os"
	"strconv"
)

// LoadFromEnv overrides configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if port := os.Getenv("PIXELVAULT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	if logLevel := os.Getenv("PIXELVAULT_LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}

	if mode := os.Getenv("STORAGE_MODE"); mode != "" {
		cfg.Storage.Mode = mode
	}
	if path := os.Getenv("LOCAL_STORAGE_PATH"); path != "" {
		cfg.Storage.Local.Path = path
	}

	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		cfg.Storage.S3.Endpoint = endpoint
	}
	if key := os.Getenv("S3_ACCESS_KEY"); key != "" {
		cfg.Storage.S3.AccessKey = key
	}
	if secret := os.Getenv("S3_SECRET_KEY"); secret != "" {
		cfg.Storage.S3.SecretKey = secret
	}
	if region := os.Getenv("S3_REGION"); region != "" {
		cfg.Storage.S3.Region = region
	}

	if conn := os.Getenv("AZURE_STORAGE_CONNECTION_STRING"); conn != "" {
		cfg.Storage.Azure.ConnectionString = conn
	}
	if url := os.Getenv("AZURE_STORAGE_SERVICE_URL"); url != "" {
		cfg.Storage.Azure.ServiceURL = url
	}

	if source := os.Getenv("PIXELVAULT_SOURCE_CONTAINER"); source != "" {
		cfg.Storage.SourceContainer = source
	}
	if cache := os.Getenv("PIXELVAULT_CACHE_CONTAINER"); cache != "" {
		cfg.Storage.CacheContainer = cache
	}

	if placeholder := os.Getenv("PIXELVAULT_PLACEHOLDER"); placeholder != "" {
		cfg.Media.Placeholder = placeholder
	}
	if policy := os.Getenv("PIXELVAULT_RESIZE_POLICY"); policy != "" {
		cfg.Media.ResizePolicy = policy
	}
}

// GetEnvOrDefault returns an environment variable or a default value.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
