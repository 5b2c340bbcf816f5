// Package chunk implements the paletted block/biome storage used by Java
// Edition chunk columns: bit-packed value arrays, palette containers that
// promote from single-value through indirect to direct encoding, and the
// chunk section/column types that compose them.
package chunk

import (
	"fmt"
	"math/bits"
)

// BitArray packs fixed-width values into a slice of 64-bit words with no
// value ever spanning a word boundary (the "no-span" layout vanilla uses for
// block state and biome palette containers since 1.16).
type BitArray struct {
	bitsPerValue int
	valuesPerLong int
	length       int
	data         []uint64
}

// NewBitArray returns a BitArray of length values, each bitsPerValue wide,
// zero-initialized. bitsPerValue must be in [1, 64].
func NewBitArray(bitsPerValue, length int) *BitArray {
	if bitsPerValue <= 0 || bitsPerValue > 64 {
		panic(fmt.Sprintf("chunk: invalid bitsPerValue %d", bitsPerValue))
	}
	valuesPerLong := 64 / bitsPerValue
	longCount := (length + valuesPerLong - 1) / valuesPerLong
	return &BitArray{
		bitsPerValue:  bitsPerValue,
		valuesPerLong: valuesPerLong,
		length:        length,
		data:          make([]uint64, longCount),
	}
}

// NewBitArrayFromLongs wraps pre-packed data (e.g. from NBT long arrays or
// the network wire form) as a BitArray of length values.
func NewBitArrayFromLongs(bitsPerValue, length int, data []uint64) *BitArray {
	ba := NewBitArray(bitsPerValue, length)
	copy(ba.data, data)
	return ba
}

func (b *BitArray) BitsPerValue() int { return b.bitsPerValue }
func (b *BitArray) Len() int          { return b.length }
func (b *BitArray) Longs() []uint64   { return b.data }

// Get returns the value stored at index.
func (b *BitArray) Get(index int) uint64 {
	word := index / b.valuesPerLong
	bitOffset := (index - word*b.valuesPerLong) * b.bitsPerValue
	mask := uint64(1)<<uint(b.bitsPerValue) - 1
	return (b.data[word] >> uint(bitOffset)) & mask
}

// Set stores value at index, masked to bitsPerValue bits.
func (b *BitArray) Set(index int, value uint64) {
	word := index / b.valuesPerLong
	bitOffset := (index - word*b.valuesPerLong) * b.bitsPerValue
	mask := uint64(1)<<uint(b.bitsPerValue) - 1
	b.data[word] = (b.data[word] &^ (mask << uint(bitOffset))) | ((value & mask) << uint(bitOffset))
}

// Resize returns a new BitArray holding the same length values re-packed at
// newBits per value.
func (b *BitArray) Resize(newBits int) *BitArray {
	out := NewBitArray(newBits, b.length)
	for i := 0; i < b.length; i++ {
		out.Set(i, b.Get(i))
	}
	return out
}

// NeededBits returns the minimum bit width required to represent v.
func NeededBits(v int32) int {
	if v <= 0 {
		return 0
	}
	return 32 - bits.LeadingZeros32(uint32(v))
}
