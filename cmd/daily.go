package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/modes"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's daily challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		game, closeFn, err := openGame(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		now := time.Now()
		mode := modes.Daily(now)
		st := game.Statistics()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Daily challenge for %s: %s\n", now.Format("Mon Jan 2"), mode.DisplayName())
		if st.DailyDoneOn(now) {
			fmt.Fprintln(out, "Completed today. Come back tomorrow!")
		} else {
			fmt.Fprintln(out, "Not played yet. Start it with: mathrush play --daily")
		}
		fmt.Fprintf(out, "Daily challenges completed: %d\n", st.DailyChallengesCompleted)
		return nil
	},
}
