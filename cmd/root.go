package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cs2kit/cs2kit/internal/config"
	"github.com/cs2kit/cs2kit/internal/log"
)

var (
	version  = "dev"
	cfgFile  string
	logLevel string
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:     "cs2kit",
	Short:   "Operator tooling for a modded CS2 dedicated server",
	Long: `cs2kit maintains a modded CS2 dedicated server install: it extracts map
groups and workshop references from gamemodes_server.txt, keeps the
subscribed-IDs file in sync, edits map groups, overlays custom files onto
the game tree, and patches gameinfo.gi for the plugin loader.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Configure(log.Config{Level: logLevel})
		return config.Validate(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/cs2kit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error (default warn, or CS2KIT_LOG)")
	rootCmd.PersistentFlags().String("game-dir", "",
		"root of the deployed game tree (default: game/csgo)")
	rootCmd.PersistentFlags().String("custom-dir", "",
		"custom files overlay tree (default: custom_files)")

	// Bind flags to viper
	_ = viper.BindPFlag("game_dir", rootCmd.PersistentFlags().Lookup("game-dir"))
	_ = viper.BindPFlag("custom_dir", rootCmd.PersistentFlags().Lookup("custom-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("game_dir", defaults.GameDir)
	viper.SetDefault("custom_dir", defaults.CustomDir)
	viper.SetDefault("output.listing", defaults.Output.Listing)
	viper.SetDefault("output.ids", defaults.Output.IDs)
	viper.SetDefault("workshop.api_base", defaults.Workshop.APIBase)
	viper.SetDefault("workshop.timeout", defaults.Workshop.Timeout)
	viper.SetDefault("workshop.concurrency", defaults.Workshop.Concurrency)
	viper.SetDefault("workshop.cache_ttl", defaults.Workshop.CacheTTL)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .cs2kit/config.yaml (server install root)
		// 2. ~/.config/cs2kit/config.yaml (user config)
		if _, err := os.Stat(".cs2kit/config.yaml"); err == nil {
			viper.SetConfigFile(".cs2kit/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "cs2kit"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default at
		// .cs2kit/config.yaml and continue with defaults if that fails.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".cs2kit/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// requireFile returns a friendly error when a command's input is missing;
// the extraction core itself never fails on content, only on absence.
func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input file %s: %w", path, err)
	}
	return nil
}
