package blobstore

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// CopyAll copies the named segments from src to dst with bounded
// parallelism. The first error cancels the remaining copies.
func CopyAll(ctx context.Context, dst, src Store, names []string, parallelism int) error {
	if parallelism <= 0 {
		parallelism = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for _, name := range names {
		g.Go(func() error {
			if err := copyBlob(ctx, dst, src, name); err != nil {
				return fmt.Errorf("blobstore: copying segment %q: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func copyBlob(ctx context.Context, dst, src Store, name string) error {
	blob, err := src.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	w, err := dst.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, io.NewSectionReader(blob, 0, blob.Size())); err != nil {
		w.Close()
		dst.Delete(ctx, name)
		return err
	}
	return w.Close()
}
