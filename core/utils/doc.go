// Package utils provides common utility functions for the indexer.
// It holds the text normalization and optional-string helpers shared by
// metadata extraction and the export formats.
package utils
