package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ebook-indexer/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNoStorage is returned for s3:// sources when no storage client is configured.
var ErrNoStorage = errors.New("object storage is not configured")

// ReadSource reads a catalog from a local path or an s3://bucket/key URI.
// Unlike Store.Load, an absent local file is an error here; callers decide
// how to degrade.
func ReadSource(ctx context.Context, src string, client storage.Client) (*Catalog, error) {
	if bucket, key, ok := storage.ParseURI(src); ok {
		if client == nil {
			return nil, ErrNoStorage
		}
		obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
		}
		defer obj.Close()

		c, err := Decode(obj)
		if err != nil {
			return nil, &MalformedError{Path: src, Err: err}
		}
		return c, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, &MalformedError{Path: src, Err: err}
	}
	return c, nil
}
