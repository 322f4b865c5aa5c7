package vectorstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropwise/cropwise/config"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vector_db")
	store := NewFileStore(dir)

	_, err := store.Get(ctx, DocumentsKey)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	require.NoError(t, store.Put(ctx, DocumentsKey, []byte("[]")))
	require.NoError(t, store.Put(ctx, DocumentsKey, []byte(`[{"id":"a"}]`)))

	data, err := store.Get(ctx, DocumentsKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNewObjectStore(t *testing.T) {
	ctx := context.Background()

	s, err := NewObjectStore(ctx, &config.Config{Storage: config.StorageConfig{Type: "file", Path: t.TempDir()}})
	require.NoError(t, err)
	assert.Equal(t, "file", s.Name())

	s, err = NewObjectStore(ctx, &config.Config{Storage: config.StorageConfig{Type: "memory"}})
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Name())

	_, err = NewObjectStore(ctx, &config.Config{Storage: config.StorageConfig{Type: "s3"}})
	assert.ErrorContains(t, err, "bucket")

	_, err = NewObjectStore(ctx, &config.Config{Storage: config.StorageConfig{Type: "ftp"}})
	assert.Error(t, err)
}

func TestS3StoreObjectKey(t *testing.T) {
	s, err := NewS3Store(context.Background(), config.S3Config{
		Bucket:          "cropwise",
		Prefix:          "kb",
		Region:          "ap-south-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "kb/documents.json", s.objectKey(DocumentsKey))
	assert.Equal(t, "s3", s.Name())
}
