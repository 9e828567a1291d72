// Package compress provides the block codecs used for bitset snapshots.
//
// Supported types:
//   - None: stored as-is
//   - LZ4:  fast, good for hot data (github.com/pierrec/lz4/v4)
//   - ZSTD: better ratio, good for cold data (github.com/klauspost/compress/zstd)
//
// Compress reports the type it actually applied: if a codec does not shrink a
// block below 90% of its raw size, the block is stored uncompressed and the
// returned type is None. Callers persist that returned type next to the data.
package compress
