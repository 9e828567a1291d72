// Package cache provides a byte-bounded LRU for whole blobs.
//
// It backs blobstore.CachingStore, which keeps recently loaded snapshots in
// memory in front of a remote store.
package cache
