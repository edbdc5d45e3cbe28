package cmd

import (
	"strconv"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/metadata"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderStats lays out per-format counts with a totals footer.
func renderStats(s catalog.Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Format", "Live", "Missing", "Stale", "Size"})

	for _, f := range metadata.Formats() {
		fs := s.Formats[f]
		tw.AppendRow(table.Row{string(f), itoa(fs.Live), itoa(fs.Missing), itoa(fs.Stale), humanize.IBytes(uint64(fs.Bytes))})
	}
	tw.AppendFooter(table.Row{"Total", itoa(s.Live), itoa(s.Missing), itoa(s.Stale), humanize.IBytes(uint64(s.Bytes))})

	configs := make([]table.ColumnConfig, 0, 4)
	for i := 2; i <= 5; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
			AlignFooter: text.AlignRight,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
