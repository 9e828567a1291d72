package compress

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a block compression algorithm.
// The numeric values are persisted and must not change.
type Type uint8

const (
	// None indicates no compression.
	None Type = 0
	// LZ4 indicates LZ4 block compression.
	LZ4 Type = 1
	// ZSTD indicates ZSTD block compression.
	ZSTD Type = 2
)

// minSavings is the largest compressed/raw ratio worth keeping.
const minSavings = 0.9

const (
	// lz4MaxRatio bounds how far an LZ4 block can expand: one token byte
	// carries at most 255 bytes of match length.
	lz4MaxRatio = 255

	zstdMaxPrealloc = 64 << 20

	// MaxDecodedSize is the largest block Decompress will produce for LZ4 or ZSTD.
	MaxDecodedSize = 1 << 32
)

var (
	// ErrUnknownType is returned for a Type value outside the known set.
	ErrUnknownType = errors.New("compress: unknown type")

	// ErrSizeMismatch is returned when a block decompresses to an unexpected size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")

	// ErrTooLarge is returned when the expected decoded size cannot come from
	// the given block or exceeds MaxDecodedSize.
	ErrTooLarge = errors.New("compress: decoded size too large")
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return t <= ZSTD
}

// ParseType parses a type name as produced by String. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
}

// Compress encodes src with t and returns the encoded block and the type
// actually applied. Empty or incompressible input comes back unchanged with None.
func Compress(t Type, src []byte) ([]byte, Type, error) {
	if len(src) == 0 || t == None {
		return src, None, nil
	}

	var (
		out []byte
		err error
	)
	switch t {
	case LZ4:
		out, err = compressLZ4(src)
	case ZSTD:
		out, err = compressZSTD(src)
	default:
		return nil, None, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	if err != nil {
		return nil, None, fmt.Errorf("compress %s: %w", t, err)
	}

	if len(out) == 0 || float64(len(out)) > float64(len(src))*minSavings {
		return src, None, nil
	}
	return out, t, nil
}

func compressLZ4(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))

	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return dst[:n], nil
}

func compressZSTD(src []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(src, nil), nil
}

// Decompress decodes a block produced by Compress. rawSize is the expected
// decoded length and must be known by the caller.
func Decompress(t Type, src []byte, rawSize int) ([]byte, error) {
	if rawSize < 0 {
		return nil, fmt.Errorf("%w: negative raw size %d", ErrSizeMismatch, rawSize)
	}

	switch t {
	case None:
		if len(src) != rawSize {
			return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrSizeMismatch, len(src), rawSize)
		}
		return src, nil

	case LZ4:
		if int64(rawSize) > MaxDecodedSize || rawSize/lz4MaxRatio > len(src) {
			return nil, fmt.Errorf("%w: %d bytes from a %d byte lz4 block", ErrTooLarge, rawSize, len(src))
		}
		dst := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, fmt.Errorf("decompress lz4: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrSizeMismatch, n, rawSize)
		}
		return dst, nil

	case ZSTD:
		if int64(rawSize) > MaxDecodedSize {
			return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, rawSize)
		}
		var hdr zstd.Header
		if err := hdr.Decode(src); err != nil {
			return nil, fmt.Errorf("decompress zstd: %w", err)
		}
		var dst []byte
		if hdr.HasFCS {
			if hdr.FrameContentSize != uint64(rawSize) {
				return nil, fmt.Errorf("%w: frame holds %d bytes, want %d", ErrSizeMismatch, hdr.FrameContentSize, rawSize)
			}
			// A forged frame fails while decoding, so only preallocate a bounded amount.
			dst = make([]byte, 0, min(rawSize, zstdMaxPrealloc))
		}

		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(src, dst)
		if err != nil {
			return nil, fmt.Errorf("decompress zstd: %w", err)
		}
		if len(decoded) != rawSize {
			return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrSizeMismatch, len(decoded), rawSize)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
}
