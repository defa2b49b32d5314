// Package config loads the clutch configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultFileName       = "conf.toml"
	DefaultVolumeStep     = 0.05
	DefaultLogLevel       = "info"
	DefaultToggleKey      = "f9"
	DefaultQuitKey        = "f10"
	DefaultSuspendKey     = "f11"
	DefaultModifier       = "ctrl"
	DefaultVolumeUpKey    = "up"
	DefaultVolumeDownKey  = "down"
	DefaultVolumeModifier = "ctrl+shift"
)

type Config struct {
	Settings    Settings    `toml:"settings"`
	Keybindings Keybindings `toml:"keybindings"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

type Settings struct {
	Whitelist      []string `toml:"whitelist"`
	MusicApp       string   `toml:"music_app"`
	UnmuteOnQuit   bool     `toml:"unmute_on_quit"`
	VolumeIncrease float64  `toml:"volume_increase"`
	VolumeDecrease float64  `toml:"volume_decrease"`
	LogLevel       string   `toml:"log_level"`
	Notifications  bool     `toml:"notifications"`
	Tray           bool     `toml:"tray"`
	FeedbackTone   bool     `toml:"feedback_tone"`
}

// Keybindings holds symbolic key and modifier names per action. The
// volume bindings are optional; an empty key disables the action.
type Keybindings struct {
	Toggle        string `toml:"toggle"`
	ToggleMod     string `toml:"toggle_mod"`
	Quit          string `toml:"quit"`
	QuitMod       string `toml:"quit_mod"`
	Suspend       string `toml:"suspend"`
	SuspendMod    string `toml:"suspend_mod"`
	VolumeUp      string `toml:"volume_up"`
	VolumeUpMod   string `toml:"volume_up_mod"`
	VolumeDown    string `toml:"volume_down"`
	VolumeDownMod string `toml:"volume_down_mod"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Settings: Settings{
			Whitelist:      []string{},
			UnmuteOnQuit:   true,
			VolumeIncrease: DefaultVolumeStep,
			VolumeDecrease: DefaultVolumeStep,
			LogLevel:       DefaultLogLevel,
			Tray:           true,
		},
		Keybindings: Keybindings{
			Toggle:        DefaultToggleKey,
			ToggleMod:     DefaultModifier,
			Quit:          DefaultQuitKey,
			QuitMod:       DefaultModifier,
			Suspend:       DefaultSuspendKey,
			SuspendMod:    DefaultModifier,
			VolumeUp:      DefaultVolumeUpKey,
			VolumeUpMod:   DefaultVolumeModifier,
			VolumeDown:    DefaultVolumeDownKey,
			VolumeDownMod: DefaultVolumeModifier,
		},
	}
}

// Load reads the config at path, or at Path() when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values the core relies on. Key names are checked
// later against the platform key tables.
func (c *Config) Validate() error {
	required := []struct {
		field, value string
	}{
		{"toggle", c.Keybindings.Toggle},
		{"toggle_mod", c.Keybindings.ToggleMod},
		{"quit", c.Keybindings.Quit},
		{"quit_mod", c.Keybindings.QuitMod},
		{"suspend", c.Keybindings.Suspend},
		{"suspend_mod", c.Keybindings.SuspendMod},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("keybindings.%s is required", r.field)
		}
	}

	if err := validStep("volume_increase", c.Settings.VolumeIncrease); err != nil {
		return err
	}
	return validStep("volume_decrease", c.Settings.VolumeDecrease)
}

func validStep(field string, v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("settings.%s must be in (0, 1], got %v", field, v)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Path returns the platform-specific config file path.
func Path() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "clutch", DefaultFileName)
}
