package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Anish-Chanda/bytesearch/internal/hasher"
	"github.com/Anish-Chanda/bytesearch/internal/search"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	Algorithm    string
	Hasher       string
	Stats        bool
	Record       bool
	MaxTextBytes int64

	AWSRegion      string
	AWSEndpointURL string
	PostgresDSN    string
	MigrationsDir  string
}

// Load reads the configuration from BSEARCH_* environment variables and
// from any flags bound into viper beforehand.
func Load() (*Config, error) {
	viper.SetEnvPrefix("BSEARCH")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ALGORITHM", search.DefaultAlgorithm.String())
	viper.SetDefault("HASHER", hasher.DefaultName)
	viper.SetDefault("MAX_TEXT_BYTES", 64<<20)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")

	cfg := &Config{
		ServerAddr: viper.GetString("SERVER_ADDR"),
		LogLevel:   viper.GetString("LOG_LEVEL"),

		Algorithm:    viper.GetString("ALGORITHM"),
		Hasher:       viper.GetString("HASHER"),
		Stats:        viper.GetBool("STATS"),
		Record:       viper.GetBool("RECORD"),
		MaxTextBytes: viper.GetInt64("MAX_TEXT_BYTES"),

		AWSRegion:      viper.GetString("AWS_REGION"),
		AWSEndpointURL: viper.GetString("AWS_ENDPOINT_URL"),
		PostgresDSN:    viper.GetString("POSTGRES_DSN"),
		MigrationsDir:  viper.GetString("MIGRATIONS_DIR"),
	}

	if _, err := search.ParseAlgorithm(cfg.Algorithm); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := hasher.Lookup(cfg.Hasher); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.MaxTextBytes <= 0 {
		return nil, fmt.Errorf("config: MAX_TEXT_BYTES must be positive, got %d", cfg.MaxTextBytes)
	}
	if cfg.Record && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("config: RECORD requires POSTGRES_DSN")
	}
	return cfg, nil
}
