package export

import (
	"encoding/json"
	"fmt"
	"io"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/utils"

	"github.com/goccy/go-yaml"
)

// Entry is the file export shape of one live record.
type Entry struct {
	Path        string            `json:"path" yaml:"path"`
	Format      string            `json:"format" yaml:"format"`
	Hash        string            `json:"hash,omitempty" yaml:"hash,omitempty"`
	SizeBytes   int64             `json:"size_bytes" yaml:"size_bytes"`
	Found       string            `json:"found" yaml:"found"`
	Missing     bool              `json:"missing,omitempty" yaml:"missing,omitempty"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Author      string            `json:"author,omitempty" yaml:"author,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Publisher   string            `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishDate string            `json:"publish_date,omitempty" yaml:"publish_date,omitempty"`
	Chapters    []string          `json:"chapters,omitempty" yaml:"chapters,omitempty"`
	Extras      map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Entries returns the live view as export entries.
func Entries(c *catalog.Catalog) []Entry {
	live := c.Live()
	out := make([]Entry, 0, len(live))
	for _, r := range live {
		e := Entry{
			Path:        r.Path,
			Format:      string(r.Format),
			SizeBytes:   r.SizeBytes,
			Found:       r.DiscoveredAt,
			Missing:     r.Missing,
			Title:       utils.Deref(r.Title),
			Author:      utils.Deref(r.Author),
			Description: utils.Deref(r.Description),
			Publisher:   utils.Deref(r.Publisher),
			PublishDate: utils.Deref(r.PublishDate),
			Chapters:    r.Chapters,
			Extras:      r.Extras,
		}
		if r.Hash != nil {
			e.Hash = r.Hash.String()
		}
		out = append(out, e)
	}
	return out
}

// ToYAML writes the live view as a YAML sequence.
func ToYAML(w io.Writer, c *catalog.Catalog) error {
	data, err := yaml.Marshal(Entries(c))
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ToJSON writes the live view as an indented JSON array.
func ToJSON(w io.Writer, c *catalog.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Entries(c))
}
