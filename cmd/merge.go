package cmd

import (
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <catalog>",
	Short: "Fold another catalog into this one",
	Long: `Fold the records of another catalog into this one using the same rules
as load. <catalog> is a local file or an s3://bucket/key object. A source
that cannot be read is treated as empty.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		_, err = a.service.Merge(cmd.Context(), args[0])
		return err
	},
}

func init() {
	RootCmd.AddCommand(mergeCmd)
}
