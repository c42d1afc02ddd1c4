package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Downloads.MaxConcurrent != 3 {
		t.Errorf("default max_concurrent = %d, want 3", config.Downloads.MaxConcurrent)
	}
	if config.Downloads.AudioFormat != "mp3" {
		t.Errorf("default audio_format = %q, want mp3", config.Downloads.AudioFormat)
	}
	if len(config.Downloads.ResolutionOrder) != 2 ||
		config.Downloads.ResolutionOrder[0] != "direct" ||
		config.Downloads.ResolutionOrder[1] != "search" {
		t.Errorf("default resolution_order = %v, want [direct search]", config.Downloads.ResolutionOrder)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[credentials.spotify]
client_id = "id"
client_secret = "secret"

[downloads]
folder = "songs"
max_concurrent = 8
resolution_order = ["search", "direct"]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.Credentials.Spotify.ClientID != "id" {
			t.Errorf("client_id = %q", config.Credentials.Spotify.ClientID)
		}
		if config.Downloads.MaxConcurrent != 8 {
			t.Errorf("max_concurrent = %d, want 8", config.Downloads.MaxConcurrent)
		}
		if config.Downloads.ResolutionOrder[0] != "search" {
			t.Errorf("resolution_order = %v", config.Downloads.ResolutionOrder)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed toml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		os.WriteFile(path, []byte("not [valid toml"), 0644)

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed toml")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Downloads.MaxConcurrent = 0 },
			wantErr: true,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Downloads.MaxConcurrent = -2 },
			wantErr: true,
		},
		{
			name:    "empty resolution order",
			mutate:  func(c *Config) { c.Downloads.ResolutionOrder = nil },
			wantErr: true,
		},
		{
			name:    "unknown resolution step",
			mutate:  func(c *Config) { c.Downloads.ResolutionOrder = []string{"direct", "torrent"} },
			wantErr: true,
		},
		{
			name:   "search only",
			mutate: func(c *Config) { c.Downloads.ResolutionOrder = []string{"search"} },
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("CreateConfigFile() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}
