package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/dynbitset/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	store, err := New("localhost:9000", "bucket", WithCredentials("a", "b"), WithPrefix("p/"), WithRegion("us-east-1"))
	require.NoError(t, err)
	assert.Equal(t, "p/x.snap", store.key("x.snap"))
}

func TestStore_InvalidName(t *testing.T) {
	// Validation happens before any request, so no server is needed.
	store, err := New("localhost:9000", "bucket", WithCredentials("a", "b"))
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", "../escape", "/abs"} {
		_, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, blobstore.ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), blobstore.ErrInvalidName, name)
		assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), blobstore.ErrInvalidName, name)
	}
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	bucket := "test-dynbitset"

	store, err := New("localhost:9000", bucket, WithCredentials("minioadmin", "minioadmin"), WithPrefix("test-prefix/"))
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "sets/test.snap", data))

	blob, err := store.Open(ctx, "sets/test.snap")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "minio", string(buf))

	n, err = blob.ReadAt(ctx, make([]byte, 10), int64(len(data))-5)
	assert.Equal(t, 5, n)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "sets/")
	require.NoError(t, err)
	assert.Contains(t, names, "sets/test.snap")

	require.NoError(t, store.Delete(ctx, "sets/test.snap"))
	_, err = store.Open(ctx, "sets/test.snap")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
