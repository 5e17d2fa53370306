package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/modes"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start a game directly",
	Long:  "Start a game in the given mode, skipping the menu. Modes: " + modeList() + ".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		daily, _ := cmd.Flags().GetBool("daily")
		if daily {
			if len(args) > 0 {
				return fmt.Errorf("--daily picks today's mode; drop %q", args[0])
			}
			return runApp(cmd, settings, appStart{daily: true})
		}

		mode := settings.DefaultMode
		if len(args) > 0 {
			if mode, err = modes.Parse(args[0]); err != nil {
				return err
			}
		}
		return runApp(cmd, settings, appStart{mode: mode})
	},
}

func init() {
	playCmd.Flags().Bool("daily", false, "Play today's daily challenge")
}

func modeList() string {
	var names []string
	for _, m := range modes.All() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
