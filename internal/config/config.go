// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Taxonomy  TaxonomyConfig  `mapstructure:"taxonomy"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Hints     HintsConfig     `mapstructure:"hints"`
	Reports   ReportsConfig   `mapstructure:"reports"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type TaxonomyConfig struct {
	Host           string `mapstructure:"host"`
	Key            string `mapstructure:"key"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

type AnalyticsConfig struct {
	EventWindowSize          int `mapstructure:"event_window_size"`
	SnapshotTTLMinutes       int `mapstructure:"snapshot_ttl_minutes"`
	RecommendationTTLMinutes int `mapstructure:"recommendation_ttl_minutes"`
}

type HintsConfig struct {
	TemplatesFile string `mapstructure:"templates_file"`
}

type ReportsConfig struct {
	OutputDirectory string `mapstructure:"output_directory"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/learn-analytics")
	}

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "learn")
	v.SetDefault("database.database", "learn_analytics")
	v.SetDefault("taxonomy.cache_directory", filepath.Join("taxonomy", "cache"))
	v.SetDefault("analytics.event_window_size", 500)
	v.SetDefault("analytics.snapshot_ttl_minutes", 5)
	v.SetDefault("analytics.recommendation_ttl_minutes", 10)
	v.SetDefault("hints.templates_file", filepath.Join("assets", "hints.yml"))
	v.SetDefault("reports.output_directory", filepath.Join("outputs", "reports"))

	// Bind secrets to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "LEARN_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind LEARN_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("taxonomy.host", "TAXONOMY_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind TAXONOMY_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("taxonomy.key", "TAXONOMY_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind TAXONOMY_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
