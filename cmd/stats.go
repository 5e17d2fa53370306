package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, closeFn, err := openGame(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		width, _ := cmd.Flags().GetInt("width")
		return report.Write(cmd.OutOrStdout(), report.Input{
			Stats:    game.Statistics(),
			Unlocked: game.Unlocked(),
			Now:      time.Now(),
			Width:    width,
		})
	},
}

func init() {
	statsCmd.Flags().Int("width", 0, "Chart width in columns (default: terminal width)")
}
