package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor the config file set a value.
const (
	DefaultPort                = 5000
	DefaultClipdropURL         = "https://clipdrop-api.co/text-to-image/v1"
	DefaultPinataURL           = "https://api.pinata.cloud/pinning/pinFileToIPFS"
	DefaultPinataGatewayURL    = "https://gateway.pinata.cloud/ipfs/"
	DefaultGenerationTimeout   = 60 * time.Second
	DefaultPromptExcerptLength = 50
	DefaultPublishTimeout      = 60 * time.Second
	DefaultStoreTimeout        = 10 * time.Second
	DefaultMongoDatabase       = "aleart"
)

// Config holds application configuration loaded from environment and file.
// Priority: env vars → config.toml → defaults
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `validate:"min=1,max=65535"`

	Clipdrop ClipdropConfig
	Pinata   PinataConfig
	Store    StoreConfig
	Log      LogConfig
}

// ClipdropConfig configures the text-to-image upstream.
type ClipdropConfig struct {
	APIKey  string
	URL     string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

// PinataConfig configures IPFS pinning. Only JWT is used for authentication;
// APIKey and APISecret are accepted for compatibility with existing deployments.
type PinataConfig struct {
	APIKey              string
	APISecret           string
	JWT                 string
	URL                 string        `validate:"required,url"`
	GatewayURL          string        `validate:"required,url"`
	PromptExcerptLength int           `validate:"gt=0"`
	Timeout             time.Duration `validate:"gt=0"`
}

// StoreConfig configures the metadata document store.
type StoreConfig struct {
	// URI selects the driver by scheme: mongodb://, mongodb+srv://, sqlite:// or file:.
	// Empty disables metadata recording.
	URI      string
	Database string        `validate:"required"`
	Timeout  time.Duration `validate:"gt=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error"`
	Format string `validate:"omitempty,oneof=console json"`
	File   string
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads .env, the TOML file at path and environment variables.
// A missing .env or config file is not an error.
func Load(path string) (*Config, error) {
	// Values already present in the environment win over .env entries.
	_ = godotenv.Load()

	file, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := &Config{
		Port: getEnvIntOrFile("PORT", file.Port, DefaultPort),
		Clipdrop: ClipdropConfig{
			APIKey:  getEnvOrFile("CLIPDROP_API_KEY", file.Clipdrop.APIKey, ""),
			URL:     getEnvOrFile("CLIPDROP_API_URL", file.Clipdrop.URL, DefaultClipdropURL),
			Timeout: time.Duration(getEnvIntOrFile("GENERATION_TIMEOUT", file.Clipdrop.TimeoutSeconds, int(DefaultGenerationTimeout/time.Second))) * time.Second,
		},
		Pinata: PinataConfig{
			APIKey:              getEnvOrFile("PINATA_API_KEY", file.Pinata.APIKey, ""),
			APISecret:           getEnvOrFile("PINATA_API_SECRET", file.Pinata.APISecret, ""),
			JWT:                 getEnvOrFile("PINATA_JWT", file.Pinata.JWT, ""),
			URL:                 getEnvOrFile("PINATA_API_URL", file.Pinata.URL, DefaultPinataURL),
			GatewayURL:          getEnvOrFile("PINATA_GATEWAY_URL", file.Pinata.GatewayURL, DefaultPinataGatewayURL),
			PromptExcerptLength: getEnvIntOrFile("PROMPT_EXCERPT_LENGTH", file.Pinata.PromptExcerptLength, DefaultPromptExcerptLength),
			Timeout:             seconds(getEnvIntOrFile("PINATA_TIMEOUT", file.Pinata.TimeoutSeconds, int(DefaultPublishTimeout/time.Second))),
		},
		Store: StoreConfig{
			URI:      getEnvOrFile("MONGODB_URI", file.Store.URI, ""),
			Database: getEnvOrFile("MONGODB_DATABASE", file.Store.Database, DefaultMongoDatabase),
			Timeout:  seconds(getEnvIntOrFile("STORE_TIMEOUT", file.Store.TimeoutSeconds, int(DefaultStoreTimeout/time.Second))),
		},
		Log: LogConfig{
			Level:  getEnvOrFile("LOG_LEVEL", file.Log.Level, "info"),
			Format: getEnvOrFile("LOG_FORMAT", file.Log.Format, "console"),
			File:   getEnvOrFile("LOG_FILE", file.Log.File, ""),
		},
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and URL formats. Missing credentials are allowed:
// the affected steps are skipped or fail per request.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequestBudget is the longest a generation request can take: generation,
// publishing and recording, each under its own deadline.
func (c *Config) RequestBudget() time.Duration {
	return c.Clipdrop.Timeout + c.Pinata.Timeout + c.Store.Timeout
}

// PublishingEnabled reports whether IPFS uploads should be attempted.
func (c *Config) PublishingEnabled() bool {
	return c.Pinata.JWT != ""
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvIntOrFile is getEnvOrFile for integers; unparsable env values are ignored.
func getEnvIntOrFile(key string, fileValue, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return defaultValue
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
