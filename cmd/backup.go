package cmd

import (
	"errors"
	"time"

	"ebook-indexer/feature/backup"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upload the catalog to object storage",
	Long: `Upload the catalog file to the configured bucket (STORAGE_*) as
<prefix>/<name>-<timestamp>.json, keeping the newest STORAGE_RETAIN copies.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		if a.client == nil {
			return errors.New("object storage is not configured")
		}
		_, err = backup.Push(cmd.Context(), a.client, a.store.Path, backup.Options{
			Bucket: a.cfg.Storage.Bucket,
			Prefix: a.cfg.Storage.Prefix,
			Retain: a.cfg.Storage.Retain,
		}, time.Now(), a.logger)
		return err
	},
}

func init() {
	RootCmd.AddCommand(backupCmd)
}
