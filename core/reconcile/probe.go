package reconcile

import (
	"os"

	"ebook-indexer/core/contentid"
	"ebook-indexer/core/metadata"
)

// Probe is the read-only view of the filesystem the engine works against.
// Every method may be called concurrently.
type Probe interface {
	// Stat returns the size of the file at path.
	Stat(path string) (int64, error)

	// Hash returns the content hash and byte count of the file at path.
	Hash(path string) (contentid.Hash, int64, error)

	// Extract returns best-effort metadata. On error the returned value is
	// still usable and the error is only reported.
	Extract(path string, format metadata.Format) (metadata.Metadata, error)
}

// FileProbe reads the local filesystem.
type FileProbe struct{}

// Stat implements Probe.
func (FileProbe) Stat(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Hash implements Probe.
func (FileProbe) Hash(path string) (contentid.Hash, int64, error) {
	return contentid.HashFile(path)
}

// Extract implements Probe.
func (FileProbe) Extract(path string, format metadata.Format) (metadata.Metadata, error) {
	return metadata.Extract(path, format)
}
