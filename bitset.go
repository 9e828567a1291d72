package dynbitset

import (
	"fmt"
	"strings"
)

const (
	// WordBits is the number of bits per storage word.
	WordBits = 32

	// wordShift converts a flat index to an array index (index >> 5 == index / 32).
	wordShift = 5

	// offsetMask extracts the bit offset from a flat index (index & 31 == index % 32).
	offsetMask = WordBits - 1
)

// Bitset is a growable array of bits backed by 32-bit words.
//
// Bit i lives in word i/32 at offset i%32. Capacity only changes in whole
// words: Resize and AppendWord grow it, RemoveLastWord shrinks it.
//
// The zero value is an empty Bitset ready for use. A nil *Bitset reads as
// empty: Get, Set and Word report ErrOutOfBounds for every index and
// RemoveLastWord reports ErrInvalidOperation. Resize to a larger size and
// AppendWord need a non-nil receiver.
//
// A Bitset is not safe for concurrent use; callers sharing one must
// synchronize externally.
type Bitset struct {
	words []uint32
}

// New creates a Bitset with initialWords zeroed words.
// A negative count yields an empty Bitset.
func New(initialWords int) *Bitset {
	if initialWords < 0 {
		initialWords = 0
	}
	return &Bitset{words: make([]uint32, initialWords)}
}

// FromWords creates a Bitset holding a copy of words.
func FromWords(words []uint32) *Bitset {
	b := &Bitset{words: make([]uint32, len(words))}
	copy(b.words, words)
	return b
}

// view returns the words, or nil for a nil receiver.
func (b *Bitset) view() []uint32 {
	if b == nil {
		return nil
	}
	return b.words
}

// locate splits a flat index into its array index and bit offset.
func locate(index int) (arrayIndex, bitOffset int) {
	return index >> wordShift, index & offsetMask
}

// checkBounds reports an error if either coordinate is out of range.
func (b *Bitset) checkBounds(index, arrayIndex, bitOffset int) error {
	n := len(b.view())
	if arrayIndex < 0 || arrayIndex >= n || bitOffset < 0 || bitOffset >= WordBits {
		return &OutOfBoundsError{
			Index:      index,
			ArrayIndex: arrayIndex,
			BitOffset:  bitOffset,
			WordCount:  n,
		}
	}
	return nil
}

func (b *Bitset) getAt(index, arrayIndex, bitOffset int) (bool, error) {
	if err := b.checkBounds(index, arrayIndex, bitOffset); err != nil {
		return false, err
	}
	return (b.words[arrayIndex]>>uint(bitOffset))&1 != 0, nil
}

func (b *Bitset) setAt(index, arrayIndex, bitOffset int, state bool) error {
	if err := b.checkBounds(index, arrayIndex, bitOffset); err != nil {
		return err
	}
	mask := uint32(1) << uint(bitOffset)
	var v uint32
	if state {
		v = mask
	}
	b.words[arrayIndex] = (b.words[arrayIndex] &^ mask) | v
	return nil
}

// Get returns the bit at index.
// It returns an error wrapping ErrOutOfBounds if index is negative or >= Len().
func (b *Bitset) Get(index int) (bool, error) {
	if index < 0 {
		return false, &OutOfBoundsError{Index: index, ArrayIndex: -1, BitOffset: -1, WordCount: len(b.view())}
	}
	arrayIndex, bitOffset := locate(index)
	return b.getAt(index, arrayIndex, bitOffset)
}

// Set assigns state to the bit at index. No other bit changes.
// On error the Bitset is left untouched.
func (b *Bitset) Set(index int, state bool) error {
	if index < 0 {
		return &OutOfBoundsError{Index: index, ArrayIndex: -1, BitOffset: -1, WordCount: len(b.view())}
	}
	arrayIndex, bitOffset := locate(index)
	return b.setAt(index, arrayIndex, bitOffset, state)
}

// Resize grows the Bitset to newWordCount words, zero-filling the new ones.
// Shrinking is rejected with ErrInvalidResize; use RemoveLastWord instead.
func (b *Bitset) Resize(newWordCount int) error {
	cur := len(b.view())
	if newWordCount < cur {
		return &InvalidResizeError{Requested: newWordCount, Current: cur}
	}
	if newWordCount == cur {
		return nil
	}

	if newWordCount <= cap(b.words) {
		// Reslicing may expose words left behind by RemoveLastWord.
		b.words = b.words[:newWordCount]
		clear(b.words[cur:])
		return nil
	}

	grown := make([]uint32, newWordCount)
	copy(grown, b.words)
	b.words = grown
	return nil
}

// AppendWord appends word verbatim as the new last word.
func (b *Bitset) AppendWord(word uint32) {
	b.words = append(b.words, word)
}

// RemoveLastWord drops the last word together with every bit it held.
// The bits are gone for good: growing again yields zeroes.
// It returns ErrInvalidOperation if the Bitset has no words.
func (b *Bitset) RemoveLastWord() error {
	n := len(b.view())
	if n == 0 {
		return fmt.Errorf("%w: remove last word from empty bitset", ErrInvalidOperation)
	}
	b.words[n-1] = 0
	b.words = b.words[:n-1]
	return nil
}

// ResetWords zeroes every word in [from, to).
func (b *Bitset) ResetWords(from, to int) error {
	words := b.view()
	if from < 0 || to > len(words) || from > to {
		return fmt.Errorf("%w: reset range [%d, %d) with %d words", ErrOutOfBounds, from, to, len(words))
	}
	clear(words[from:to])
	return nil
}

// Word returns the raw storage word at arrayIndex.
func (b *Bitset) Word(arrayIndex int) (uint32, error) {
	words := b.view()
	if arrayIndex < 0 || arrayIndex >= len(words) {
		return 0, &OutOfBoundsError{
			Index:      arrayIndex * WordBits,
			ArrayIndex: arrayIndex,
			WordCount:  len(words),
		}
	}
	return words[arrayIndex], nil
}

// Words returns a copy of the storage words.
func (b *Bitset) Words() []uint32 {
	out := make([]uint32, len(b.view()))
	copy(out, b.view())
	return out
}

// Len returns the capacity in bits.
func (b *Bitset) Len() int {
	return len(b.view()) * WordBits
}

// IsEmpty reports whether the capacity is zero.
func (b *Bitset) IsEmpty() bool {
	return len(b.view()) == 0
}

// WordCount returns the number of storage words.
func (b *Bitset) WordCount() int {
	return len(b.view())
}

// Clone returns a deep copy.
func (b *Bitset) Clone() *Bitset {
	return FromWords(b.view())
}

// Equal reports whether both bitsets hold the same words.
// A nil Bitset equals an empty one.
func (b *Bitset) Equal(other *Bitset) bool {
	x, y := b.view(), other.view()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// String renders the words as hex, lowest word first.
func (b *Bitset) String() string {
	var sb strings.Builder
	sb.WriteString("Bitset{")
	for i, w := range b.view() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08x", w)
	}
	sb.WriteByte('}')
	return sb.String()
}
