package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop stale records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		n, err := a.service.Prune(cmd.Context())
		if err != nil {
			return err
		}
		a.logger.Info("Prune complete", zap.Int("removed", n))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(pruneCmd)
}
