package reconcile

import (
	"strings"

	"ebook-indexer/core/metadata"

	"go.uber.org/zap"
)

// Outcome is the result of offering one candidate to the catalog.
type Outcome int

const (
	// Unchanged means the live record already had the candidate's hash.
	Unchanged Outcome = iota
	// Inserted means no live record existed for the path.
	Inserted
	// Superseded means the live record was retired in favour of the candidate.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Superseded:
		return "superseded"
	default:
		return "unchanged"
	}
}

// Summary provides aggregate counts for one engine operation.
type Summary struct {
	// Found counts discovered files per format (load only).
	Found map[metadata.Format]int `json:"found"`

	// Added counts inserted or superseding records per format.
	Added map[metadata.Format]int `json:"added"`

	// Inserted counts candidates for paths with no live record.
	Inserted int `json:"inserted"`

	// Superseded counts live records retired by a newer candidate.
	Superseded int `json:"superseded"`

	// Unchanged counts candidates whose hash matched the live record.
	Unchanged int `json:"unchanged"`

	// MarkedMissing counts live records newly flagged missing.
	MarkedMissing int `json:"marked_missing"`

	// Restored counts missing records whose file reappeared unchanged.
	Restored int `json:"restored"`

	// Rehashed counts records whose hash was recomputed.
	Rehashed int `json:"rehashed"`

	// Degraded counts per-file failures that were logged and absorbed.
	Degraded int `json:"degraded"`

	// ForeignStale counts stale records absorbed from a merged catalog.
	ForeignStale int `json:"foreign_stale"`

	// Pruned counts removed stale records.
	Pruned int `json:"pruned"`
}

func newSummary() Summary {
	return Summary{
		Found: map[metadata.Format]int{},
		Added: map[metadata.Format]int{},
	}
}

func (s *Summary) count(o Outcome, f metadata.Format) {
	switch o {
	case Inserted:
		s.Inserted++
		s.Added[f]++
	case Superseded:
		s.Superseded++
		s.Added[f]++
	default:
		s.Unchanged++
	}
}

// Changed reports whether the operation touched the catalog.
func (s Summary) Changed() bool {
	return s.Inserted+s.Superseded+s.MarkedMissing+s.Restored+s.Rehashed+s.Pruned > 0
}

// Fields renders the non-zero counters as log fields.
func (s Summary) Fields() []zap.Field {
	var fields []zap.Field
	for _, f := range metadata.Formats() {
		if n := s.Found[f]; n > 0 {
			fields = append(fields, zap.Int("found_"+lower(f), n))
		}
		if n := s.Added[f]; n > 0 {
			fields = append(fields, zap.Int("added_"+lower(f), n))
		}
	}
	counters := []struct {
		key string
		n   int
	}{
		{"inserted", s.Inserted},
		{"superseded", s.Superseded},
		{"unchanged", s.Unchanged},
		{"marked_missing", s.MarkedMissing},
		{"restored", s.Restored},
		{"rehashed", s.Rehashed},
		{"degraded", s.Degraded},
		{"foreign_stale", s.ForeignStale},
		{"pruned", s.Pruned},
	}
	for _, c := range counters {
		if c.n > 0 {
			fields = append(fields, zap.Int(c.key, c.n))
		}
	}
	return fields
}

func lower(f metadata.Format) string {
	return strings.ToLower(string(f))
}
