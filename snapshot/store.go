package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/dynbitset"
	"github.com/hupe1980/dynbitset/blobstore"
	"github.com/hupe1980/dynbitset/internal/conv"
)

// Store saves and loads bitset snapshots in a blob store.
// It is safe for concurrent use if the underlying blob store is.
type Store struct {
	blobs   blobstore.Store
	opts    options
	limiter *rate.Limiter
}

// New creates a Store on top of blobs.
func New(blobs blobstore.Store, optFns ...Option) *Store {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Store{blobs: blobs, opts: opts}
	if n := opts.ioBytesPerSec; n > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(n), n)
	}
	return s
}

func (s *Store) blobName(name string) (string, error) {
	if err := blobstore.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %q", err, name)
	}
	return s.opts.prefix + name + Extension, nil
}

// waitIO blocks until n bytes of IO are allowed.
func (s *Store) waitIO(ctx context.Context, n int) error {
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

// Save writes b under name, replacing any previous snapshot.
func (s *Store) Save(ctx context.Context, name string, b *dynbitset.Bitset) (err error) {
	if b == nil {
		return fmt.Errorf("snapshot: save %q: %w", name, dynbitset.ErrInvalidOperation)
	}

	start := time.Now()
	var size int
	defer func() {
		s.opts.metricsCollector.RecordSave(size, time.Since(start), err)
		s.opts.logger.LogSave(ctx, name, b.WordCount(), size, err)
	}()

	key, err := s.blobName(name)
	if err != nil {
		return err
	}

	data, err := encode(b, s.opts.compression)
	if err != nil {
		return fmt.Errorf("snapshot: encode %q: %w", name, err)
	}
	size = len(data)

	if err := s.waitIO(ctx, size); err != nil {
		return err
	}
	if err := s.blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("snapshot: put %q: %w", name, err)
	}
	return nil
}

// Load reads the snapshot stored under name.
// A missing snapshot yields an error matching ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (b *dynbitset.Bitset, err error) {
	start := time.Now()
	var size, words int
	defer func() {
		s.opts.metricsCollector.RecordLoad(size, time.Since(start), err)
		s.opts.logger.LogLoad(ctx, name, words, size, err)
	}()

	key, err := s.blobName(name)
	if err != nil {
		return nil, err
	}

	blob, err := s.blobs.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	total, err := conv.Int64ToInt(blob.Size())
	if err != nil {
		return nil, fmt.Errorf("snapshot: %q: %w", name, err)
	}
	if total < headerSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrCorrupt, name, total)
	}
	size = total

	if err := s.waitIO(ctx, size); err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if err := readFull(ctx, blob, data); err != nil {
		return nil, fmt.Errorf("snapshot: read %q: %w", name, err)
	}

	h, err := parseHeader(data[:headerSize])
	if err != nil {
		return nil, fmt.Errorf("snapshot: %q: %w", name, err)
	}
	if h.payloadLen != uint64(size-headerSize) {
		return nil, fmt.Errorf("%w: %q payload is %d bytes, header says %d",
			ErrCorrupt, name, size-headerSize, h.payloadLen)
	}

	b, err = decodePayload(h, data[headerSize:], s.opts.maxWords)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %q: %w", name, err)
	}
	words = b.WordCount()
	return b, nil
}

func readFull(ctx context.Context, blob blobstore.Blob, p []byte) error {
	n, err := blob.ReadAt(ctx, p, 0)
	if n == len(p) && (err == nil || errors.Is(err, io.EOF)) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Delete removes the snapshot stored under name. Deleting a missing
// snapshot is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := s.blobName(name)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		return fmt.Errorf("snapshot: delete %q: %w", name, err)
	}
	return nil
}

// List returns the sorted names of all snapshots in the store.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.blobs.List(ctx, s.opts.prefix)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimPrefix(k, s.opts.prefix)
		if name, ok := strings.CutSuffix(k, Extension); ok && name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// SaveAll saves every entry of sets, running up to the configured
// concurrency at once. The first error cancels the remaining saves.
func (s *Store) SaveAll(ctx context.Context, sets map[string]*dynbitset.Bitset) (err error) {
	defer func() { s.opts.logger.LogBatch(ctx, "save", len(sets), err) }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)

	for name, b := range sets {
		g.Go(func() error {
			return s.Save(gctx, name, b)
		})
	}
	return g.Wait()
}

// LoadAll loads every named snapshot, running up to the configured
// concurrency at once. The first error cancels the remaining loads and
// no partial result is returned.
func (s *Store) LoadAll(ctx context.Context, names []string) (_ map[string]*dynbitset.Bitset, err error) {
	defer func() { s.opts.logger.LogBatch(ctx, "load", len(names), err) }()

	var mu sync.Mutex
	out := make(map[string]*dynbitset.Bitset, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.concurrency)

	for _, name := range names {
		g.Go(func() error {
			b, err := s.Load(gctx, name)
			if err != nil {
				return err
			}
			mu.Lock()
			out[name] = b
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
