// Package snapshot persists named bitsets into a blob store.
//
// Each snapshot is a single blob holding a fixed 32-byte header followed by
// the raw little-endian word stream, optionally compressed:
//
//	magic "DBS1" | version | compression | reserved | word count |
//	payload length | payload CRC32C | header CRC32C | payload
//
// The header records the word count, so a snapshot is self-describing even
// though the raw word stream carries no length. Both checksums use
// CRC32-Castagnoli; a mismatch yields ErrChecksumMismatch.
//
// # Usage
//
//	store := snapshot.New(blobstore.NewMemoryStore(),
//		snapshot.WithCompression(compress.ZSTD),
//	)
//
//	if err := store.Save(ctx, "active-users", bits); err != nil {
//		return err
//	}
//	bits, err := store.Load(ctx, "active-users")
//
// SaveAll and LoadAll fan out over a bounded number of goroutines
// (WithConcurrency). WithIOLimit throttles blob traffic in bytes per second.
package snapshot
