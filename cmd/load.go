package cmd

import (
	"ebook-indexer/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	followSymlinks bool
	noHash         bool
	excludes       []string
)

var loadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Scan a directory and ingest every EPUB and PDF found",
	Long: `Walk <dir>, hash and extract metadata for every .epub and .pdf file, and
fold the results into the catalog. Unchanged files are left alone, changed
files get a new record and the old one is marked stale.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		opts := reconcile.LoadOptions{
			FollowSymlinks: a.cfg.Scan.FollowSymlinks,
			SkipHash:       a.cfg.Engine.NoHash,
			Exclude:        append(append([]string{}, a.cfg.Scan.Exclude...), excludes...),
		}
		if cmd.Flags().Changed("follow-symlinks") {
			opts.FollowSymlinks = followSymlinks
		}
		if cmd.Flags().Changed("no-hash") {
			opts.SkipHash = noHash
		}

		sum, err := a.service.Load(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		a.logger.Info("Load complete", zap.Int("added", sum.Inserted+sum.Superseded), zap.Int("degraded", sum.Degraded))
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Descend into symlinked directories")
	loadCmd.Flags().BoolVar(&noHash, "no-hash", false, "Skip content hashing (records are stored without a hash)")
	loadCmd.Flags().StringArrayVar(&excludes, "exclude", nil, "Glob of paths to skip, relative to <dir> (repeatable)")
	RootCmd.AddCommand(loadCmd)
}
