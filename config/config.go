package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Telegram TelegramConfig
	Invoice  InvoiceConfig
	Catalog  CatalogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MongoConfig holds catalog store connection configuration
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	BaseURL  string `mapstructure:"base_url"`
}

// InvoiceConfig holds invoice generation configuration
type InvoiceConfig struct {
	TaxRate   float64 `mapstructure:"tax_rate"`
	OutputDir string  `mapstructure:"output_dir"`
}

// CatalogConfig selects the catalog backend
type CatalogConfig struct {
	Type string `mapstructure:"type"` // "memory" or "mongo"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicebot/")

	// Environment variable settings
	v.SetEnvPrefix("INVOICEBOT")
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

	// Catalog store defaults
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "Invoice_Generator")
	v.SetDefault("catalog.type", "mongo")

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.base_url", "https://api.telegram.org")

	// Invoice defaults
	v.SetDefault("invoice.tax_rate", 18.0)
	v.SetDefault("invoice.output_dir", "invoices")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Telegram.BotToken == "" {
		return fmt.Errorf("Telegram bot token is required (set INVOICEBOT_TELEGRAM_BOT_TOKEN)")
	}

	if config.Catalog.Type != "memory" && config.Catalog.Type != "mongo" {
		return fmt.Errorf("catalog type must be 'memory' or 'mongo', got: %s", config.Catalog.Type)
	}

	if config.Catalog.Type == "mongo" && config.Mongo.URI == "" {
		return fmt.Errorf("Mongo URI is required when catalog type is 'mongo' (set INVOICEBOT_MONGO_URI)")
	}

	if config.Invoice.TaxRate < 0 {
		return fmt.Errorf("tax rate must not be negative, got: %v", config.Invoice.TaxRate)
	}

	return nil
}
