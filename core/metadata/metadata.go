package metadata

import (
	"fmt"
)

// Metadata holds the descriptive fields pulled from a book.
// Optional fields are nil when the book does not carry them.
type Metadata struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	Publisher   *string `json:"publisher"`
	PublishDate *string `json:"publish_date"`
	// Chapters lists table-of-contents entry titles in reading order.
	Chapters []string `json:"chapters"`
	// Extras carries any remaining key/value pairs, e.g. language.
	Extras map[string]string `json:"other_metadata"`
}

// Empty returns metadata with no fields set and non-nil collections.
func Empty() Metadata {
	return Metadata{
		Chapters: []string{},
		Extras:   map[string]string{},
	}
}

// Extract reads metadata from the file at path according to its format.
// On any failure it returns Empty() together with the error, so callers can
// log and carry on with a degraded record.
func Extract(path string, format Format) (md Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			md = Empty()
			err = fmt.Errorf("metadata parser panicked on %s: %v", path, r)
		}
	}()

	switch format {
	case Epub:
		md, err = ReadEpub(path)
	case Pdf:
		md, err = ReadPdf(path)
	default:
		return Empty(), fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return Empty(), err
	}
	return md, nil
}
