package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "config.toml"

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	Port     int          `toml:"port"`
	Clipdrop ClipdropFile `toml:"clipdrop"`
	Pinata   PinataFile   `toml:"pinata"`
	Store    StoreFile    `toml:"store"`
	Log      LogFile      `toml:"log"`
}

// ClipdropFile is the [clipdrop] table.
type ClipdropFile struct {
	APIKey         string `toml:"api_key"`
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PinataFile is the [pinata] table.
type PinataFile struct {
	APIKey              string `toml:"api_key"`
	APISecret           string `toml:"api_secret"`
	JWT                 string `toml:"jwt"`
	URL                 string `toml:"url"`
	GatewayURL          string `toml:"gateway_url"`
	PromptExcerptLength int    `toml:"prompt_excerpt_length"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
}

// StoreFile is the [store] table.
type StoreFile struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LogFile is the [log] table.
type LogFile struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if path is empty or the file doesn't exist.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteExample writes a commented example config file if none exists at path.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	example := `# artgen configuration
# Environment variables override every value below.
# port = 5000

# [clipdrop]
# api_key = ""            # CLIPDROP_API_KEY
# timeout_seconds = 60    # GENERATION_TIMEOUT

# [pinata]
# jwt = ""                # PINATA_JWT, uploads are skipped when empty
# gateway_url = "https://gateway.pinata.cloud/ipfs/"
# prompt_excerpt_length = 50
# timeout_seconds = 60    # PINATA_TIMEOUT

# [store]
# uri = "mongodb://localhost:27017"   # or "sqlite:///var/lib/artgen/images.db"
# database = "aleart"
# timeout_seconds = 10    # STORE_TIMEOUT

# [log]
# level = "info"
# format = "console"
`

	return os.WriteFile(path, []byte(example), 0644)
}
