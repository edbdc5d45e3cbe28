package cmd

import (
	"github.com/spf13/cobra"
)

var forceRehash bool

var rehashCmd = &cobra.Command{
	Use:   "rehash",
	Short: "Compute missing content hashes",
	Long: `Hash live records that were loaded with --no-hash or whose hashing failed.
With --force every live record is rehashed. Records are updated in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		_, err = a.service.Rehash(cmd.Context(), forceRehash)
		return err
	},
}

func init() {
	rehashCmd.Flags().BoolVar(&forceRehash, "force", false, "Rehash every live record")
	RootCmd.AddCommand(rehashCmd)
}
