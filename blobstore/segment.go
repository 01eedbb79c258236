package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/columnar"
)

// WriteSegment streams one columnar segment into the store under name.
// build receives a fresh serializer and writes the columns; WriteSegment
// finalizes the segment and publishes the blob. On any error the blob is
// not published and a best-effort delete cleans up the destination.
func WriteSegment(ctx context.Context, store Store, name string, build func(*columnar.Serializer) error, opts ...columnar.Option) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("blobstore: creating segment %q: %w", name, err)
	}

	s := columnar.NewSerializer(w, opts...)
	if err := build(s); err != nil {
		abandon(ctx, store, name, w)
		return err
	}
	if err := s.Finalize(); err != nil {
		abandon(ctx, store, name, w)
		return err
	}
	if err := w.Close(); err != nil {
		store.Delete(ctx, name)
		return fmt.Errorf("blobstore: publishing segment %q: %w", name, err)
	}
	return nil
}

func abandon(ctx context.Context, store Store, name string, w WritableBlob) {
	w.Close()
	store.Delete(ctx, name)
}

// ReadSegment loads a stored segment fully into memory and opens a reader
// over it.
func ReadSegment(ctx context.Context, store Store, name string) (*columnar.Reader, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data := make([]byte, blob.Size())
	if _, err := io.ReadFull(io.NewSectionReader(blob, 0, blob.Size()), data); err != nil {
		return nil, fmt.Errorf("blobstore: reading segment %q: %w", name, err)
	}
	return columnar.OpenReader(data)
}
