package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/dynbitset/internal/cache"
)

// CachingStore wraps a Store and keeps recently opened blobs in memory.
//
// Whole blobs are cached on Open, up to a total of capacity bytes. Put and
// Delete through the CachingStore invalidate the cached copy; writes that
// bypass it are not observed until the entry is evicted.
type CachingStore struct {
	inner Store
	cache *cache.LRU
}

// NewCachingStore creates a CachingStore holding at most capacity bytes.
func NewCachingStore(inner Store, capacity int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity),
	}
}

// Open returns the cached blob or loads it from the wrapped store.
// Blobs larger than the cache capacity are passed through uncached.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	size := b.Size()
	if size > s.cache.Capacity() {
		return b, nil
	}
	defer func() { _ = b.Close() }()

	data := make([]byte, size)
	if n, err := b.ReadAt(ctx, data, 0); n != len(data) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

// Put writes through to the wrapped store and drops the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	err := s.inner.Put(ctx, name, data)
	s.cache.Remove(name)
	return err
}

// Delete deletes from the wrapped store and drops the cached copy.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.cache.Remove(name)
	return err
}

// List is passed through to the wrapped store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns the cache hits and misses so far.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
