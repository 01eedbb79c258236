package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/columnar/blobstore"
)

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-columnar"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Put and Open
	data := []byte("hello minio world")
	err = store.Put(ctx, "test.seg", data)
	require.NoError(t, err)

	blob, err := store.Open(ctx, "test.seg")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)
	require.NoError(t, blob.Close())

	// Range read
	blob2, err := store.Open(ctx, "test.seg")
	require.NoError(t, err)
	partBuf := make([]byte, 5)
	_, err = blob2.ReadAt(partBuf, 6)
	require.NoError(t, err)
	assert.Equal(t, "minio", string(partBuf))
	require.NoError(t, blob2.Close())

	// Streaming write through Create
	wb, err := store.Create(ctx, "stream.seg")
	require.NoError(t, err)
	_, err = wb.Write([]byte("streamed"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	// List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.seg")
	assert.Contains(t, names, "stream.seg")

	// Delete
	require.NoError(t, store.Delete(ctx, "test.seg"))
	require.NoError(t, store.Delete(ctx, "stream.seg"))

	_, err = store.Open(ctx, "test.seg")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
