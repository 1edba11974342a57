package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	LCAHub     LCAHubConfig
	Optimizer  OptimizerConfig
	Acceptance AcceptanceConfig
	Audit      AuditConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog configuration
type CatalogConfig struct {
	// Path to a YAML catalog file. Empty means the built-in sample catalog.
	Path string `mapstructure:"path"`
}

// LCAHubConfig holds remote footprint service configuration.
// The engine works without it; when an API key is set the footprint
// table is hydrated from the hub at startup.
type LCAHubConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// OptimizerConfig holds beam search configuration
type OptimizerConfig struct {
	BeamWidth        int     `mapstructure:"beam_width"`
	MaxPriceDelta    float64 `mapstructure:"max_price_delta"`
	MaxSubstitutes   int     `mapstructure:"max_substitutes"`
	EmissionsWeight  float64 `mapstructure:"emissions_weight"`
	CostWeight       float64 `mapstructure:"cost_weight"`
	SimilarityWeight float64 `mapstructure:"similarity_weight"`
	HealthWeight     float64 `mapstructure:"health_weight"`
	ConfidenceLevel  float64 `mapstructure:"confidence_level"`
}

// AcceptanceConfig holds swap acceptance model configuration
type AcceptanceConfig struct {
	// Path to a YAML file with logistic model weights. Empty means the
	// heuristic fallback.
	ModelPath   string `mapstructure:"model_path"`
	MessageType string `mapstructure:"message_type"`
}

// AuditConfig holds audit trail configuration
type AuditConfig struct {
	// Path to the SQLite database file. Empty disables auditing.
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/greencart/")

	// Environment variable settings
	v.SetEnvPrefix("GREENCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// LCA hub defaults
	v.SetDefault("lcahub.base_url", "https://hub.greencart.dev")

	// Optimizer defaults
	v.SetDefault("optimizer.beam_width", 10)
	v.SetDefault("optimizer.max_price_delta", 0.03)
	v.SetDefault("optimizer.max_substitutes", 10)
	v.SetDefault("optimizer.emissions_weight", 1.0)
	v.SetDefault("optimizer.cost_weight", 0.1)
	v.SetDefault("optimizer.similarity_weight", 0.5)
	v.SetDefault("optimizer.health_weight", 0.3)
	v.SetDefault("optimizer.confidence_level", 0.95)

	// Acceptance defaults
	v.SetDefault("acceptance.message_type", "conversational")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Optimizer.BeamWidth <= 0 {
		return fmt.Errorf("optimizer beam width must be positive, got: %d", config.Optimizer.BeamWidth)
	}

	if config.Optimizer.MaxPriceDelta < 0 {
		return fmt.Errorf("optimizer max price delta must be non-negative, got: %f", config.Optimizer.MaxPriceDelta)
	}

	if config.Optimizer.ConfidenceLevel <= 0 || config.Optimizer.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be in (0, 1), got: %f", config.Optimizer.ConfidenceLevel)
	}

	if config.Acceptance.MessageType != "numeric" && config.Acceptance.MessageType != "conversational" {
		return fmt.Errorf("message type must be 'numeric' or 'conversational', got: %s", config.Acceptance.MessageType)
	}

	return nil
}
