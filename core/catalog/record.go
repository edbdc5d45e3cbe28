package catalog

import (
	"encoding/json"
	"net/url"
	"path/filepath"
	"time"

	"ebook-indexer/core/contentid"
	"ebook-indexer/core/metadata"
)

// ProtocolFile is the only locator protocol the indexer produces.
const ProtocolFile = "file"

// Record is one catalogued sighting of a book file.
//
// Identity, hash and metadata are fixed once the record is created. A change
// on disk produces a new record and marks this one stale.
type Record struct {
	// Path is the absolute file path and the correlation key across runs.
	Path string `json:"full_path"`
	// URI is the file:// locator derived from Path.
	URI string `json:"uri_path"`
	// Protocol names the locator scheme.
	Protocol string `json:"protocol"`
	// Filename is the base name of Path.
	Filename string `json:"filename"`
	// Hash is nil when hashing was skipped or failed.
	Hash *contentid.Hash `json:"xxhash"`
	// DiscoveredAt is an RFC 3339 timestamp, empty in some foreign catalogs.
	DiscoveredAt string `json:"date_found"`
	// Missing marks a live record whose file is no longer reachable.
	Missing bool `json:"missing"`
	// Stale marks a superseded record kept for audit.
	Stale bool `json:"stale"`
	// SizeBytes is the last observed size.
	SizeBytes int64           `json:"size_bytes"`
	Format    metadata.Format `json:"format"`

	metadata.Metadata
}

// NewRecord builds a live record for a file observed at now.
func NewRecord(path string, format metadata.Format, hash *contentid.Hash, size int64, md metadata.Metadata, now time.Time) Record {
	r := Record{
		Path:         path,
		Hash:         hash,
		DiscoveredAt: Timestamp(now),
		SizeBytes:    size,
		Format:       format,
		Metadata:     md,
	}
	r.fillDefaults()
	return r
}

// Live reports whether the record is the current entry for its path.
func (r Record) Live() bool {
	return !r.Stale
}

// Timestamp formats t the way records store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UnmarshalJSON decodes a record and fills fields that older catalogs lack.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Record(p)
	r.fillDefaults()
	return nil
}

func (r *Record) fillDefaults() {
	if r.Format == "" {
		r.Format = metadata.Epub
		if f, ok := metadata.FormatFromPath(r.Path); ok {
			r.Format = f
		}
	}
	if r.Protocol == "" {
		r.Protocol = ProtocolFile
	}
	if r.Filename == "" && r.Path != "" {
		r.Filename = filepath.Base(r.Path)
	}
	if r.URI == "" && r.Path != "" {
		r.URI = FileURI(r.Path)
	}
	if r.Chapters == nil {
		r.Chapters = []string{}
	}
	if r.Extras == nil {
		r.Extras = map[string]string{}
	}
}

// FileURI returns the file:// URI for an absolute path.
func FileURI(path string) string {
	u := url.URL{Scheme: ProtocolFile, Path: filepath.ToSlash(path)}
	return u.String()
}
