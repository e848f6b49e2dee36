package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the reasons dataset.
type DataConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	RatePerMinute int    `yaml:"rate_per_minute"`
}

// BotConfig holds Discord shim settings. The token itself only ever comes
// from the DISCORD_TOKEN environment variable.
type BotConfig struct {
	GuildID string `yaml:"guild_id,omitempty"`
}

// Config holds noaas configuration.
type Config struct {
	Version string       `yaml:"version"`
	Data    DataConfig   `yaml:"data"`
	Server  ServerConfig `yaml:"server,omitempty"`
	Bot     BotConfig    `yaml:"bot,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: "1",
		Data: DataConfig{
			Path:  "data/reasons.json",
			Watch: true,
		},
		Server: ServerConfig{
			Addr:          ":3000",
			RatePerMinute: 120,
		},
	}
}

// LoadConfig reads a config file, filling missing fields from defaults.
// A missing file is not an error: defaults apply, so the binary runs with
// zero setup. PORT and NOAAS_DATA env vars override the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if dataPath := os.Getenv("NOAAS_DATA"); dataPath != "" {
		cfg.Data.Path = dataPath
	}
	return cfg, nil
}
