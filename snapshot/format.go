package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hupe1980/dynbitset"
	"github.com/hupe1980/dynbitset/compress"
	"github.com/hupe1980/dynbitset/internal/conv"
	"github.com/hupe1980/dynbitset/internal/hash"
)

// Snapshot layout (little-endian):
//
//	[0:4]   magic "DBS1"
//	[4]     version
//	[5]     compression type
//	[6:8]   reserved, zero
//	[8:16]  word count
//	[16:24] payload length in bytes
//	[24:28] CRC32C of the raw word stream
//	[28:32] CRC32C of bytes [0:28]
//	[32:]   payload: raw word stream, compressed as recorded
const (
	headerSize    = 32
	formatVersion = 1
)

var magic = [4]byte{'D', 'B', 'S', '1'}

type header struct {
	compression compress.Type
	wordCount   uint64
	payloadLen  uint64
	rawCRC      uint32
}

func (h header) appendTo(dst []byte) []byte {
	start := len(dst)
	dst = append(dst, magic[:]...)
	dst = append(dst, formatVersion, byte(h.compression), 0, 0)
	dst = binary.LittleEndian.AppendUint64(dst, h.wordCount)
	dst = binary.LittleEndian.AppendUint64(dst, h.payloadLen)
	dst = binary.LittleEndian.AppendUint32(dst, h.rawCRC)
	return binary.LittleEndian.AppendUint32(dst, hash.CRC32C(dst[start:]))
}

func parseHeader(b []byte) (header, error) {
	if len(b) < headerSize {
		return header{}, fmt.Errorf("%w: header is %d bytes", ErrCorrupt, len(b))
	}
	if [4]byte(b[0:4]) != magic {
		return header{}, ErrBadMagic
	}
	if b[4] != formatVersion {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, b[4])
	}
	if got, want := hash.CRC32C(b[:28]), binary.LittleEndian.Uint32(b[28:32]); got != want {
		return header{}, fmt.Errorf("%w: header crc %08x, want %08x", ErrChecksumMismatch, got, want)
	}

	h := header{
		compression: compress.Type(b[5]),
		wordCount:   binary.LittleEndian.Uint64(b[8:16]),
		payloadLen:  binary.LittleEndian.Uint64(b[16:24]),
		rawCRC:      binary.LittleEndian.Uint32(b[24:28]),
	}
	if !h.compression.Valid() {
		return header{}, fmt.Errorf("%w: compression %s", ErrCorrupt, h.compression)
	}
	return h, nil
}

// encode serializes b into a complete snapshot blob.
func encode(b *dynbitset.Bitset, t compress.Type) ([]byte, error) {
	raw, err := b.AppendBinary(make([]byte, 0, b.WordCount()*dynbitset.WordBytes))
	if err != nil {
		return nil, err
	}

	payload, used, err := compress.Compress(t, raw)
	if err != nil {
		return nil, err
	}

	wordCount, err := conv.IntToUint64(b.WordCount())
	if err != nil {
		return nil, err
	}
	payloadLen, err := conv.IntToUint64(len(payload))
	if err != nil {
		return nil, err
	}

	h := header{
		compression: used,
		wordCount:   wordCount,
		payloadLen:  payloadLen,
		rawCRC:      hash.CRC32C(raw),
	}
	out := h.appendTo(make([]byte, 0, headerSize+len(payload)))
	return append(out, payload...), nil
}

// decodePayload turns a payload described by h back into a Bitset.
// maxWords of zero means no limit beyond what the codec can produce from payload.
func decodePayload(h header, payload []byte, maxWords int) (*dynbitset.Bitset, error) {
	words, err := conv.Uint64ToInt(h.wordCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if maxWords > 0 && words > maxWords {
		return nil, fmt.Errorf("%w: %d words, limit %d", ErrTooLarge, words, maxWords)
	}
	rawSize, err := conv.MulInt(words, dynbitset.WordBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	raw, err := compress.Decompress(h.compression, payload, rawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if got := hash.CRC32C(raw); got != h.rawCRC {
		return nil, fmt.Errorf("%w: payload crc %08x, want %08x", ErrChecksumMismatch, got, h.rawCRC)
	}

	b, err := dynbitset.ReadWords(bytes.NewReader(raw), words)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return b, nil
}
