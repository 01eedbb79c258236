package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a segment blob does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
// The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// Store is a destination for finished segments.
type Store interface {
	// Open opens an existing segment blob for reading.
	Open(ctx context.Context, name string) (Blob, error)

	// Create creates a segment blob for streaming writes. The blob
	// becomes visible once Close returns nil.
	Create(ctx context.Context, name string) (WritableBlob, error)

	// Put writes a segment blob in one call.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a segment blob. Deleting a missing blob is not an
	// error.
	Delete(ctx context.Context, name string) error

	// List returns the segment names with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored segment.
type Blob interface {
	io.ReaderAt
	io.Closer

	// Size returns the segment size in bytes.
	Size() int64
}

// WritableBlob is a streaming handle for an in-progress segment upload.
type WritableBlob interface {
	io.WriteCloser

	// Sync makes the bytes written so far durable where the backend
	// supports it; a no-op for streaming uploads.
	Sync() error
}
