// Package dynbitset provides a growable bitset backed by 32-bit words.
//
// A Bitset stores independent boolean flags addressed by a flat, zero-based
// index. Bit i lives in word i/32 at offset i%32; capacity is always a whole
// number of words.
//
// # Quick Start
//
//	b := dynbitset.New(2) // 64 bits, all zero
//
//	_ = b.Set(37, true)
//	on, _ := b.Get(37) // true
//
//	_ = b.Resize(3)        // grow to 96 bits, new word zeroed
//	b.AppendWord(0xff)     // raw word, taken verbatim
//	_ = b.RemoveLastWord() // lossy: the removed bits are gone
//
// # Errors
//
// Get and Set return an error matching ErrOutOfBounds when the index is past
// Len(). Resize rejects shrinking with ErrInvalidResize; RemoveLastWord on an
// empty bitset returns ErrInvalidOperation. Use errors.As with
// *OutOfBoundsError or *InvalidResizeError for details.
//
// # Encoding
//
// WriteTo emits the words as little-endian uint32 values with no header, so
// the word count must travel out of band (ReadWords takes it explicitly).
// MarshalBinary prefixes a uint64 word count. The snapshot package adds a
// checksummed, optionally compressed envelope and stores it in a blobstore.
//
// # Thread Safety
//
// Bitset does no locking. Callers sharing one across goroutines must
// synchronize externally.
package dynbitset
