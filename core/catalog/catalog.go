package catalog

import (
	"time"

	"ebook-indexer/core/metadata"
)

// Catalog is the ordered record set persisted as one document.
// Order is append order and carries no meaning.
type Catalog struct {
	Books       []Record   `json:"books"`
	LastUpdated *time.Time `json:"last_updated"`
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{Books: []Record{}}
}

// Append adds a record and returns its index.
func (c *Catalog) Append(r Record) int {
	c.Books = append(c.Books, r)
	return len(c.Books) - 1
}

// LiveIndex maps each path to the index of its live record.
// If a damaged document holds several live records for a path, the last wins.
func (c *Catalog) LiveIndex() map[string]int {
	idx := make(map[string]int, len(c.Books))
	for i, r := range c.Books {
		if r.Live() {
			idx[r.Path] = i
		}
	}
	return idx
}

// Live returns copies of the live records in catalog order.
func (c *Catalog) Live() []Record {
	live := make([]Record, 0, len(c.Books))
	for _, r := range c.Books {
		if r.Live() {
			live = append(live, r)
		}
	}
	return live
}

// FormatStats aggregates record states for one format.
type FormatStats struct {
	Live    int
	Stale   int
	Missing int
	// Bytes sums SizeBytes over live records that are not missing.
	Bytes int64
}

// Stats summarizes the catalog.
type Stats struct {
	Records  int
	Live     int
	Stale    int
	Missing  int
	Unhashed int
	Bytes    int64
	Formats  map[metadata.Format]FormatStats
}

// Stats tallies record states per format.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Records: len(c.Books),
		Formats: make(map[metadata.Format]FormatStats, len(metadata.Formats())),
	}
	for _, f := range metadata.Formats() {
		s.Formats[f] = FormatStats{}
	}

	for _, r := range c.Books {
		fs := s.Formats[r.Format]
		switch {
		case r.Stale:
			fs.Stale++
			s.Stale++
		case r.Missing:
			fs.Live++
			fs.Missing++
			s.Live++
			s.Missing++
		default:
			fs.Live++
			fs.Bytes += r.SizeBytes
			s.Live++
			s.Bytes += r.SizeBytes
		}
		if r.Live() && r.Hash == nil {
			s.Unhashed++
		}
		s.Formats[r.Format] = fs
	}
	return s
}
