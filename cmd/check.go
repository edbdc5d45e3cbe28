package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify catalogued files still exist and are unchanged",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		sum, err := a.service.Check(cmd.Context())
		if err != nil {
			return err
		}
		if sum.MarkedMissing > 0 {
			a.logger.Warn("Some catalogued files are missing", zap.Int("missing", sum.MarkedMissing))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
