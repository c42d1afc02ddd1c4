package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Downloads   DownloadsConfig   `toml:"downloads"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	TokenPath    string `toml:"token_path"`
}

// YouTubeConfig contains YouTube Music session settings.
type YouTubeConfig struct {
	CookiePath string `toml:"cookie_path"`
	BinaryPath string `toml:"binary_path"`
}

// DownloadsConfig contains download pipeline settings.
type DownloadsConfig struct {
	Folder          string   `toml:"folder"`
	AudioFormat     string   `toml:"audio_format"`
	AudioQuality    string   `toml:"audio_quality"`
	MaxConcurrent   int      `toml:"max_concurrent"`
	SearchRateLimit float64  `toml:"search_rate_limit"`
	ResolutionOrder []string `toml:"resolution_order"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the download settings for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Downloads.MaxConcurrent <= 0 {
		return fmt.Errorf("%w: max_concurrent must be positive", ErrInvalidConfig)
	}

	if len(c.Downloads.ResolutionOrder) == 0 {
		return fmt.Errorf("%w: resolution_order must name at least one step", ErrInvalidConfig)
	}

	for _, step := range c.Downloads.ResolutionOrder {
		switch step {
		case "direct", "search":
		default:
			return fmt.Errorf("%w: unknown resolution step %q", ErrInvalidConfig, step)
		}
	}

	return nil
}
