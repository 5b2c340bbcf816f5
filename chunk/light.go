package chunk

import (
	"fmt"
	"io"

	"github.com/go-mclib/protocol/varint"
)

// decodeLongArrayBitSet reads a VarInt-prefixed array of big-endian u64
// words, the wire form vanilla uses for the light presence/empty masks.
func decodeLongArrayBitSet(r io.Reader) ([]uint64, error) {
	br := byteReaderFrom(r)
	n, _, err := varint.ReadVarInt(br)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := readLong(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func bitSetTest(words []uint64, i int) bool {
	word := i / 64
	if word >= len(words) {
		return false
	}
	return words[word]&(1<<uint(i%64)) != 0
}

// ApplyLightData reads the trailing light section of a Chunk Data and Update
// Light packet body (sky-light mask, block-light mask, empty-sky-light
// mask, empty-block-light mask, then the sky and block light arrays in
// slot order) into col's BlockLight/SkyLight slots.
func (c *ChunkColumn) ApplyLightData(r io.Reader) error {
	skyMask, err := decodeLongArrayBitSet(r)
	if err != nil {
		return fmt.Errorf("chunk: read sky light mask: %w", err)
	}
	blockMask, err := decodeLongArrayBitSet(r)
	if err != nil {
		return fmt.Errorf("chunk: read block light mask: %w", err)
	}
	if _, err := decodeLongArrayBitSet(r); err != nil { // empty sky light mask
		return fmt.Errorf("chunk: read empty sky light mask: %w", err)
	}
	if _, err := decodeLongArrayBitSet(r); err != nil { // empty block light mask
		return fmt.Errorf("chunk: read empty block light mask: %w", err)
	}

	numSlots := c.NumSections + 2
	br := byteReaderFrom(r)

	readArrays := func(mask []uint64) ([][]byte, []bool, error) {
		out := make([][]byte, numSlots)
		set := make([]bool, numSlots)
		for slot := 0; slot < numSlots; slot++ {
			if !bitSetTest(mask, slot) {
				continue
			}
			length, _, err := varint.ReadVarInt(br)
			if err != nil {
				return nil, nil, err
			}
			data := make([]byte, length)
			if _, err := io.ReadFull(r, data); err != nil {
				return nil, nil, err
			}
			out[slot] = data
			set[slot] = true
		}
		return out, set, nil
	}

	sky, skySet, err := readArrays(skyMask)
	if err != nil {
		return fmt.Errorf("chunk: read sky light arrays: %w", err)
	}
	block, blockSet, err := readArrays(blockMask)
	if err != nil {
		return fmt.Errorf("chunk: read block light arrays: %w", err)
	}
	c.SkyLight, c.skyLightSet = sky, skySet
	c.BlockLight, c.blockLightSet = block, blockSet
	return nil
}
