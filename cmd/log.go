package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent diagnostics",
	Long:  "Show recorded warnings such as failed saves and generator fallbacks, newest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, settings)
		if err != nil {
			return err
		}
		defer st.Close()

		n, _ := cmd.Flags().GetInt("limit")
		events, err := st.EventRepo().QueryDiagnostics(cmd.Context(), store.QueryOpts{Limit: n})
		if err != nil {
			return fmt.Errorf("query diagnostics: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No diagnostics recorded.")
			return nil
		}
		for _, e := range events {
			fmt.Fprintf(out, "%s  %-10s %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Source, e.Message)
			if e.Detail != "" {
				fmt.Fprintf(out, ": %s", e.Detail)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
}
