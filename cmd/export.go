package cmd

import (
	"fmt"
	"io"

	"ebook-indexer/core/database"
	"ebook-indexer/feature/export"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportTarget string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export live records to a database or file",
	Long: `Export the live view of the catalog.

  --to sql   replaces the books table in the configured database (DATABASE_*)
  --to yaml  writes a YAML list to --out, or stdout
  --to json  writes a JSON list to --out, or stdout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		c, err := a.service.Snapshot()
		if err != nil {
			return err
		}

		switch exportTarget {
		case "sql":
			if dryRun {
				a.logger.Info("Dry run, database not written", zap.Int("live", len(c.Live())))
				return nil
			}
			db, err := database.Connect(a.cfg.Database)
			if err != nil {
				return err
			}
			n, err := export.ToDatabase(cmd.Context(), db, c)
			if err != nil {
				return err
			}
			a.logger.Info("Exported to database", zap.String("driver", a.cfg.Database.Driver), zap.Int("rows", n))
			return nil
		case "yaml":
			return writeExport(cmd.OutOrStdout(), func(w io.Writer) error { return export.ToYAML(w, c) })
		case "json":
			return writeExport(cmd.OutOrStdout(), func(w io.Writer) error { return export.ToJSON(w, c) })
		default:
			return fmt.Errorf("unknown export target %q (want sql, yaml or json)", exportTarget)
		}
	},
}

// writeExport writes to stdout, or atomically replaces --out.
func writeExport(stdout io.Writer, fn func(w io.Writer) error) error {
	if exportOut == "" || exportOut == "-" {
		return fn(stdout)
	}
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(fn(pw))
	}()
	if err := atomic.WriteFile(exportOut, pr); err != nil {
		pr.CloseWithError(err)
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportTarget, "to", "json", "Export target: sql, yaml or json")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file for yaml/json (default stdout)")
	RootCmd.AddCommand(exportCmd)
}
