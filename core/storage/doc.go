// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface, which covers the
// operations the indexer needs: reading a catalog from s3://bucket/key for
// merging and writing timestamped catalog backups. Both AWS S3 and self-hosted
// MinIO are supported.
//
// # Client Interface
//
// The interface keeps storage interactions mockable; see core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	bucket, key, ok := storage.ParseURI("s3://shelf/books.json")
//	rc, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
package storage
