package metadata

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported e-book container.
type Format string

const (
	// Epub is a ZIP-packaged EPUB publication.
	Epub Format = "Epub"
	// Pdf is a Portable Document Format file.
	Pdf Format = "Pdf"
)

var extensions = map[string]Format{
	".epub": Epub,
	".pdf":  Pdf,
}

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{Epub, Pdf}
}

// FormatFromPath maps a file extension, case-insensitively, to a format.
func FormatFromPath(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// UnmarshalJSON accepts the canonical names in any letter case.
func (f *Format) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "epub":
		*f = Epub
	case "pdf":
		*f = Pdf
	default:
		return fmt.Errorf("unknown format %q", s)
	}
	return nil
}
