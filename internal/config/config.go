// Package config provides configuration types, defaults, and persistence
// for cs2kit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cs2kit/cs2kit/internal/log"
)

// Config holds all configuration options for cs2kit.
type Config struct {
	// GameDir is the root of the deployed game tree, the directory holding
	// gamemodes_server.txt and gameinfo.gi.
	GameDir string `mapstructure:"game_dir"`

	// CustomDir is the overlay tree merged on top of GameDir.
	CustomDir string `mapstructure:"custom_dir"`

	Output   OutputConfig   `mapstructure:"output"`
	Workshop WorkshopConfig `mapstructure:"workshop"`
}

// OutputConfig names the artifacts written by the maps commands.
type OutputConfig struct {
	Listing string `mapstructure:"listing"` // grouped map listing
	IDs     string `mapstructure:"ids"`     // subscribed workshop IDs, one per line
}

// WorkshopConfig tunes the Steam Workshop metadata client.
type WorkshopConfig struct {
	APIBase     string        `mapstructure:"api_base"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// Defaults returns the configuration used when no config file is present.
func Defaults() Config {
	return Config{
		GameDir:   "game/csgo",
		CustomDir: "custom_files",
		Output: OutputConfig{
			Listing: "maps.txt",
			IDs:     "subscribed_file_ids.txt",
		},
		Workshop: WorkshopConfig{
			APIBase:     "https://api.steampowered.com",
			Timeout:     15 * time.Second,
			Concurrency: 4,
			CacheTTL:    10 * time.Minute,
		},
	}
}

// GamemodesPath returns the location of gamemodes_server.txt under the
// configured game tree.
func (c Config) GamemodesPath() string {
	return filepath.Join(c.GameDir, "gamemodes_server.txt")
}

// GameInfoPath returns the location of gameinfo.gi under the configured
// game tree.
func (c Config) GameInfoPath() string {
	return filepath.Join(c.GameDir, "gameinfo.gi")
}

// CustomGamemodesPath returns the custom-files copy of gamemodes_server.txt.
func (c Config) CustomGamemodesPath() string {
	return filepath.Join(c.CustomDir, "gamemodes_server.txt")
}

// CustomIDsPath returns the custom-files copy of the subscribed-IDs file.
func (c Config) CustomIDsPath() string {
	return filepath.Join(c.CustomDir, "subscribed_file_ids.txt")
}

// Validate checks the configuration for values no command could work with.
func Validate(cfg Config) error {
	if cfg.GameDir == "" {
		return fmt.Errorf("game_dir must not be empty")
	}
	if cfg.CustomDir == "" {
		return fmt.Errorf("custom_dir must not be empty")
	}
	if cfg.Output.Listing == "" || cfg.Output.IDs == "" {
		return fmt.Errorf("output.listing and output.ids must not be empty")
	}
	return ValidateWorkshop(cfg.Workshop)
}

// ValidateWorkshop checks the workshop client settings.
func ValidateWorkshop(w WorkshopConfig) error {
	if w.APIBase == "" {
		return fmt.Errorf("workshop.api_base must not be empty")
	}
	if w.Concurrency < 1 {
		return fmt.Errorf("workshop.concurrency must be at least 1, got %d", w.Concurrency)
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("workshop.timeout must be positive, got %s", w.Timeout)
	}
	if w.CacheTTL < 0 {
		return fmt.Errorf("workshop.cache_ttl must not be negative, got %s", w.CacheTTL)
	}
	return nil
}

// DefaultConfigTemplate returns the commented config file written on first
// run.
func DefaultConfigTemplate() string {
	return `# cs2kit configuration
#
# Paths are resolved relative to the directory cs2kit runs in, which is
# expected to be the server install root.

# Root of the deployed game tree (holds gamemodes_server.txt, gameinfo.gi).
game_dir: game/csgo

# Overlay tree merged on top of game_dir by "cs2kit overlay apply".
custom_dir: custom_files

output:
  # Grouped map listing written by "cs2kit maps list --output".
  listing: maps.txt
  # Subscribed workshop IDs written by "cs2kit maps ids".
  ids: subscribed_file_ids.txt

workshop:
  api_base: https://api.steampowered.com
  timeout: 15s
  concurrency: 4
  cache_ttl: 10m
`
}

// WriteDefaultConfig writes the default config template to the given path,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	logger := log.WithComponent("config")

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	logger.Info().Str("path", configPath).Msg("created default config")
	return nil
}
