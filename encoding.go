package dynbitset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/dynbitset/internal/conv"
)

// WordBytes is the encoded size of one word.
const WordBytes = WordBits / 8

// lengthPrefixSize is the size of the word count prefix written by MarshalBinary.
const lengthPrefixSize = 8

// WriteTo writes the words to w as little-endian uint32 values with no header.
// The word count is not part of the output; readers must know it (see ReadWords).
func (b *Bitset) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var buf [WordBytes]byte
	var n int64
	for _, word := range b.view() {
		binary.LittleEndian.PutUint32(buf[:], word)
		m, err := bw.Write(buf[:])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}
	return n, nil
}

// ReadWords reads exactly wordCount little-endian words from r.
func ReadWords(r io.Reader, wordCount int) (*Bitset, error) {
	if wordCount < 0 {
		return nil, fmt.Errorf("%w: negative word count %d", ErrCorrupt, wordCount)
	}

	b := New(wordCount)
	br := bufio.NewReader(r)
	var buf [WordBytes]byte
	for i := range b.words {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: read %d of %d words: %w", ErrTruncated, i, wordCount, io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		b.words[i] = binary.LittleEndian.Uint32(buf[:])
	}
	return b, nil
}

// AppendBinary appends the raw word stream (no header) to dst.
func (b *Bitset) AppendBinary(dst []byte) ([]byte, error) {
	for _, word := range b.view() {
		dst = binary.LittleEndian.AppendUint32(dst, word)
	}
	return dst, nil
}

// MarshalBinary encodes the bitset as a uint64 little-endian word count
// followed by the raw word stream.
func (b *Bitset) MarshalBinary() ([]byte, error) {
	n, err := conv.IntToUint64(len(b.view()))
	if err != nil {
		return nil, err
	}
	out := make([]byte, lengthPrefixSize, lengthPrefixSize+len(b.view())*WordBytes)
	binary.LittleEndian.PutUint64(out, n)
	return b.AppendBinary(out)
}

// UnmarshalBinary decodes data produced by MarshalBinary, replacing the
// current contents.
func (b *Bitset) UnmarshalBinary(data []byte) error {
	if len(data) < lengthPrefixSize {
		return fmt.Errorf("%w: missing word count prefix", ErrTruncated)
	}
	count, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	payload := data[lengthPrefixSize:]
	if len(payload)%WordBytes != 0 {
		return fmt.Errorf("%w: payload of %d bytes is not word aligned", ErrCorrupt, len(payload))
	}
	switch have := len(payload) / WordBytes; {
	case have < count:
		return fmt.Errorf("%w: prefix says %d words, found %d", ErrTruncated, count, have)
	case have > count:
		return fmt.Errorf("%w: prefix says %d words, found %d", ErrCorrupt, count, have)
	}

	words := make([]uint32, count)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(payload[i*WordBytes:])
	}
	b.words = words
	return nil
}
