package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petems/clutch/internal/config"
	"github.com/petems/clutch/internal/logging"
	"github.com/rs/zerolog"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var globalOpts struct {
	configPath string
	logLevel   string
}

// logger is the configured logger once loadConfig has run.
var logger *zerolog.Logger

// rootCmd runs the hotkey loop when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clutch",
	Short: "Global hotkeys for muting every app except the ones you talk in",
	Long: `clutch registers system-wide hotkeys that mute or unmute every audio
session outside a whitelist, step the volume of a music player, and suspend
the other hotkeys while a game or another tool needs the keys.

Running clutch without a subcommand starts the hotkey loop.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClutch,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		log := failureLogger()
		log.Error().Err(err).Msg("clutch failed")
		return 1
	}
	return 0
}

// failureLogger returns the configured logger, or a default one when the
// config could not be loaded.
func failureLogger() zerolog.Logger {
	if logger != nil {
		return *logger
	}
	return logging.New()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides settings.log_level)")
}

// loadConfig reads the config file and builds the logger for it.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(globalOpts.configPath)
	if err != nil {
		return nil, logging.New(), fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if globalOpts.logLevel != "" {
		level = globalOpts.logLevel
	}
	log := logging.NewWithLevel(level)
	logger = &log
	return cfg, log, nil
}
