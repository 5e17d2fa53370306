package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/session"
	"github.com/abhisek/mathrush/internal/stats"
)

// FileConfig represents the TOML configuration file. Pointer fields are nil
// when the key is absent so defaults apply.
type FileConfig struct {
	Game    GameConfig    `toml:"game"`
	Storage StorageConfig `toml:"storage"`
}

// GameConfig maps gameplay settings.
type GameConfig struct {
	Hints       *int    `toml:"hints"`
	WeeklyGoal  *int    `toml:"weekly-goal"`
	DefaultMode *string `toml:"default-mode"`
}

// StorageConfig maps storage settings.
type StorageConfig struct {
	DB *string `toml:"db"`
}

// Settings are the effective values after defaults are applied.
type Settings struct {
	Hints       int
	WeeklyGoal  int
	DefaultMode modes.Mode

	// DBPath is empty unless the file sets one.
	DBPath string
}

// Defaults returns the settings used when no config file exists.
func Defaults() Settings {
	return Settings{
		Hints:       session.DefaultHintsPerSession,
		WeeklyGoal:  stats.DefaultWeeklyGoal,
		DefaultMode: modes.Basic,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, errors.New("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Settings applies the file over Defaults and validates the result.
func (c FileConfig) Settings() (Settings, error) {
	s := Defaults()
	if c.Game.Hints != nil {
		if *c.Game.Hints < 1 {
			return Settings{}, fmt.Errorf("game.hints must be >= 1, got %d", *c.Game.Hints)
		}
		s.Hints = *c.Game.Hints
	}
	if c.Game.WeeklyGoal != nil {
		if *c.Game.WeeklyGoal < 1 {
			return Settings{}, fmt.Errorf("game.weekly-goal must be >= 1, got %d", *c.Game.WeeklyGoal)
		}
		s.WeeklyGoal = *c.Game.WeeklyGoal
	}
	if c.Game.DefaultMode != nil {
		m, err := modes.Parse(*c.Game.DefaultMode)
		if err != nil {
			return Settings{}, fmt.Errorf("game.default-mode: %w", err)
		}
		s.DefaultMode = m
	}
	if c.Storage.DB != nil {
		s.DBPath = *c.Storage.DB
	}
	return s, nil
}

// Load reads path and returns the effective settings.
func Load(path string) (Settings, error) {
	fc, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	return fc.Settings()
}

// DefaultTemplate is written by `mathrush config` when no file exists.
func DefaultTemplate() string {
	return `# mathrush configuration

[game]
# Hints available in each session.
hints = 3
# Games per week counted toward the weekly goal.
weekly-goal = 5
# Mode started by "mathrush play" without an argument.
default-mode = "basic"

[storage]
# SQLite database path. MATHRUSH_DB and --db take precedence.
# db = "~/.local/share/mathrush/mathrush.db"
`
}

// EnsureFile writes DefaultTemplate to path if no file exists there and
// reports whether it created one.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate()), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
