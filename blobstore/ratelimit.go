package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedStore wraps a Store and throttles upload bandwidth. Reads are
// not limited.
type RateLimitedStore struct {
	inner   Store
	limiter *rate.Limiter
}

// NewRateLimitedStore limits writes through store to bytesPerSec, with a
// burst of the same size. A non-positive rate disables throttling.
func NewRateLimitedStore(store Store, bytesPerSec int) *RateLimitedStore {
	var limiter *rate.Limiter
	if bytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
	return &RateLimitedStore{
		inner:   store,
		limiter: limiter,
	}
}

func (s *RateLimitedStore) Open(ctx context.Context, name string) (Blob, error) {
	return s.inner.Open(ctx, name)
}

func (s *RateLimitedStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.limiter == nil {
		return w, nil
	}
	return &limitedWritableBlob{ctx: ctx, w: w, limiter: s.limiter}, nil
}

func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.waitN(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// waitN reserves n bytes, splitting requests larger than the burst.
func (s *RateLimitedStore) waitN(ctx context.Context, n int) error {
	if s.limiter == nil {
		return nil
	}
	burst := s.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

type limitedWritableBlob struct {
	ctx     context.Context
	w       WritableBlob
	limiter *rate.Limiter
}

func (b *limitedWritableBlob) Write(p []byte) (int, error) {
	burst := b.limiter.Burst()
	written := 0
	for written < len(p) {
		chunk := min(len(p)-written, burst)
		if err := b.limiter.WaitN(b.ctx, chunk); err != nil {
			return written, err
		}
		n, err := b.w.Write(p[written : written+chunk])
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (b *limitedWritableBlob) Close() error { return b.w.Close() }

func (b *limitedWritableBlob) Sync() error { return b.w.Sync() }
