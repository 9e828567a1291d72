// Package hash provides CRC32-Castagnoli checksums for snapshot integrity.
//
// Snapshots carry two CRC32C values: one over the header and one over the
// raw word stream before compression. CRC32C detects all single-bit,
// double-bit and odd-bit errors, plus burst errors up to 32 bits.
//
// # Usage
//
//	checksum := hash.CRC32C(data)
//
// The implementation is github.com/klauspost/crc32, which uses SSE4.2 / ARM
// CRC instructions when available.
package hash
