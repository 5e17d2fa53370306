package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create the config file if missing and print its path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath(cmd)
		created, err := config.EnsureFile(path)
		if err != nil {
			return err
		}
		if _, err := config.Load(path); err != nil {
			return fmt.Errorf("config %s is invalid: %w", path, err)
		}

		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintln(out, "Created", path)
			return nil
		}
		fmt.Fprintln(out, path)
		return nil
	},
}
