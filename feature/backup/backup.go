package backup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ebook-indexer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const stampLayout = "20060102T150405Z"

// Options controls where a backup lands and how many are kept.
type Options struct {
	Bucket string
	Prefix string
	// Retain is the number of backups kept after the upload; 0 keeps all.
	Retain int
}

// Result reports what Push did.
type Result struct {
	Key     string
	Size    int64
	Removed []string
}

// ObjectKey names the backup of catalogPath taken at now.
func ObjectKey(prefix, catalogPath string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(catalogPath), filepath.Ext(catalogPath))
	key := fmt.Sprintf("%s-%s.json", name, now.UTC().Format(stampLayout))
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = path.Join(prefix, key)
	}
	return key
}

// Push uploads the catalog file at catalogPath to object storage and applies
// the retention policy to earlier backups of the same catalog.
func Push(ctx context.Context, client storage.Client, catalogPath string, opts Options, now time.Time, logger *zap.Logger) (Result, error) {
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return Result{}, fmt.Errorf("failed to create bucket %s: %w", opts.Bucket, err)
		}
		logger.Info("Created backup bucket", zap.String("bucket", opts.Bucket))
	}

	key := ObjectKey(opts.Prefix, catalogPath, now)
	_, err = client.PutObject(ctx, opts.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}
	logger.Info("Uploaded catalog backup",
		zap.String("bucket", opts.Bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	res := Result{Key: key, Size: int64(len(data))}
	if opts.Retain <= 0 {
		return res, nil
	}

	removed, err := prune(ctx, client, opts, catalogPath, logger)
	res.Removed = removed
	if err != nil {
		return res, err
	}
	return res, nil
}

// prune deletes all but the newest opts.Retain backups of catalogPath.
// Keys sort chronologically because the timestamp is fixed width.
func prune(ctx context.Context, client storage.Client, opts Options, catalogPath string, logger *zap.Logger) ([]string, error) {
	stem := strings.TrimSuffix(ObjectKey(opts.Prefix, catalogPath, time.Time{}), time.Time{}.Format(stampLayout)+".json")

	var keys []string
	for obj := range client.ListObjects(ctx, opts.Bucket, minio.ListObjectsOptions{Prefix: stem, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list backups: %w", obj.Err)
		}
		// Sibling catalogs share the stem prefix ("books-archive-..."); only
		// keys whose remainder is exactly a timestamp belong to this catalog.
		stamp, ok := strings.CutSuffix(strings.TrimPrefix(obj.Key, stem), ".json")
		if !ok {
			continue
		}
		if _, err := time.Parse(stampLayout, stamp); err != nil {
			continue
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) <= opts.Retain {
		return nil, nil
	}

	sort.Strings(keys)
	expired := keys[:len(keys)-opts.Retain]
	var removed []string
	for _, key := range expired {
		if err := client.RemoveObject(ctx, opts.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove expired backup %s: %w", key, err)
		}
		logger.Debug("Removed expired backup", zap.String("key", key))
		removed = append(removed, key)
	}
	return removed, nil
}
