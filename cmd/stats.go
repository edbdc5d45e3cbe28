package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show live, missing and stale records per format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		s, err := a.service.Stats()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, renderStats(s))
		if s.Unhashed > 0 {
			fmt.Fprintf(out, "%d live records have no hash; run rehash to fill them in.\n", s.Unhashed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
}
