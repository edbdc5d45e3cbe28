package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ebook-indexer/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 1, 12, 30, 5, 0, time.UTC)

func writeCatalog(t *testing.T) string {
	p := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"books":[]}`), 0o644))
	return p
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

// TestObjectKey tests backup object naming.
func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   string
	}{
		{"with prefix", "catalog", "/data/books.json", "catalog/books-20240301T123005Z.json"},
		{"slashes trimmed", "/catalog/", "books.json", "catalog/books-20240301T123005Z.json"},
		{"no prefix", "", "/data/library.json", "library-20240301T123005Z.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey(tt.prefix, tt.path, fixedNow))
		})
	}
}

// TestPush tests upload, bucket creation and retention.
func TestPush(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("creates bucket and uploads", func(t *testing.T) {
		p := writeCatalog(t)
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "ebooks").Return(false, nil)
		client.On("MakeBucket", ctx, "ebooks", mock.Anything).Return(nil)
		client.On("PutObject", ctx, "ebooks", "catalog/books-20240301T123005Z.json", mock.Anything, int64(12), mock.Anything).
			Return(minio.UploadInfo{}, nil)

		res, err := Push(ctx, client, p, Options{Bucket: "ebooks", Prefix: "catalog"}, fixedNow, logger)
		require.NoError(t, err)
		assert.Equal(t, "catalog/books-20240301T123005Z.json", res.Key)
		assert.Equal(t, int64(12), res.Size)
		assert.Empty(t, res.Removed)
		client.AssertExpectations(t)
	})

	t.Run("retention removes oldest", func(t *testing.T) {
		p := writeCatalog(t)
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "ebooks").Return(true, nil)
		client.On("PutObject", ctx, "ebooks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)
		client.On("ListObjects", ctx, "ebooks", minio.ListObjectsOptions{Prefix: "catalog/books-", Recursive: true}).
			Return(listing(
				"catalog/books-20240301T123005Z.json",
				"catalog/books-20240101T000000Z.json",
				"catalog/books-20240201T000000Z.json",
			))
		client.On("RemoveObject", ctx, "ebooks", "catalog/books-20240101T000000Z.json", mock.Anything).Return(nil)

		res, err := Push(ctx, client, p, Options{Bucket: "ebooks", Prefix: "catalog", Retain: 2}, fixedNow, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"catalog/books-20240101T000000Z.json"}, res.Removed)
		client.AssertExpectations(t)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("retention ignores sibling catalogs", func(t *testing.T) {
		p := writeCatalog(t)
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "ebooks").Return(true, nil)
		client.On("PutObject", ctx, "ebooks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)
		client.On("ListObjects", ctx, "ebooks", minio.ListObjectsOptions{Prefix: "catalog/books-", Recursive: true}).
			Return(listing(
				"catalog/books-20240101T000000Z.json",
				"catalog/books-20240301T123005Z.json",
				"catalog/books-archive-20230101T000000Z.json",
				"catalog/books-notes.json",
			))
		client.On("RemoveObject", ctx, "ebooks", "catalog/books-20240101T000000Z.json", mock.Anything).Return(nil)

		res, err := Push(ctx, client, p, Options{Bucket: "ebooks", Prefix: "catalog", Retain: 1}, fixedNow, logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"catalog/books-20240101T000000Z.json"}, res.Removed)
		client.AssertExpectations(t)
		client.AssertNumberOfCalls(t, "RemoveObject", 1)
	})

	t.Run("upload failure", func(t *testing.T) {
		p := writeCatalog(t)
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "ebooks").Return(true, nil)
		client.On("PutObject", ctx, "ebooks", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("access denied"))

		_, err := Push(ctx, client, p, Options{Bucket: "ebooks", Retain: 3}, fixedNow, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing catalog file", func(t *testing.T) {
		client := new(mocks.Client)
		_, err := Push(ctx, client, filepath.Join(t.TempDir(), "none.json"), Options{Bucket: "ebooks"}, fixedNow, logger)
		assert.Error(t, err)
		client.AssertNotCalled(t, "BucketExists", mock.Anything, mock.Anything)
	})
}
