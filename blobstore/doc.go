// Package blobstore provides the storage abstraction for bitset snapshots.
//
// Store is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - LocalStore: local filesystem, atomic rename on write, mmap on read
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// CachingStore wraps any Store and keeps recently opened blobs in memory,
// which pays off in front of the remote stores.
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Open must return an error matching ErrNotFound for missing blobs.
package blobstore
