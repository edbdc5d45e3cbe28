// Package backup copies the catalog file to S3-compatible object storage.
//
// Each push writes a timestamped object under a configurable prefix and
// trims older copies of the same catalog down to the retention count.
package backup
