package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/config"
	"github.com/abhisek/mathrush/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathrush",
	Short: "Arcade arithmetic quiz for the terminal",
	Long:  "MathRush is a terminal arcade game of timed arithmetic drills with combos, levels, daily challenges and achievements.",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, settings, appStart{})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHRUSH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default $XDG_CONFIG_HOME/mathrush/config.toml)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path := configPath(cmd)
	s, err := config.Load(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return s, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHRUSH_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, settings config.Settings) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if os.Getenv("MATHRUSH_DB") == "" && settings.DBPath != "" {
		return settings.DBPath, store.EnsureDir(settings.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command, settings config.Settings) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, settings)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
