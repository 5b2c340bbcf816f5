package chunk

import (
	"fmt"
	"io"

	"github.com/go-mclib/protocol/nbt"
	"github.com/go-mclib/protocol/varint"
)

// ChunkColumn is a vertical stack of chunk sections covering one 16x16
// x/z area from minY to minY+numSections*16, plus the light data vanilla
// ships alongside it. Light slots run one wider on each end than the block
// sections (numSections+2), since light leaks one section below the lowest
// and above the highest block section.
type ChunkColumn struct {
	X, Z         int32
	MinY         int32
	NumSections  int
	Sections     []*ChunkSection
	Biomes       []*BiomeSection
	Heightmaps   nbt.Compound

	// BlockLight/SkyLight hold one 4-bit nibble per cell (4096 cells, packed
	// two per byte) for each of NumSections+2 slots; a nil entry means the
	// slot has no light data. blockLightSet/skyLightSet mirror the presence
	// mask, and blockLightEmpty/skyLightEmpty the empty mask.
	BlockLight [][]byte
	SkyLight   [][]byte

	blockLightSet, blockLightEmpty []bool
	skyLightSet, skyLightEmpty     []bool

	// BlockEntities is keyed by an opaque chunk-local coordinate string (see
	// BlockEntityKey) rather than a struct, mirroring how the wire form
	// treats it as an untyped registry.
	BlockEntities map[string]nbt.Compound
}

// NewChunkColumn returns an all-air column at (x, z) with numSections block
// sections starting at minY.
func NewChunkColumn(x, z, minY int32, numSections int) *ChunkColumn {
	c := &ChunkColumn{
		X: x, Z: z, MinY: minY, NumSections: numSections,
		Sections:      make([]*ChunkSection, numSections),
		Biomes:        make([]*BiomeSection, numSections),
		Heightmaps:    nbt.NewCompound(),
		BlockLight:    make([][]byte, numSections+2),
		SkyLight:      make([][]byte, numSections+2),
		blockLightSet: make([]bool, numSections+2), blockLightEmpty: make([]bool, numSections+2),
		skyLightSet: make([]bool, numSections+2), skyLightEmpty: make([]bool, numSections+2),
		BlockEntities: make(map[string]nbt.Compound),
	}
	for i := range c.Sections {
		c.Sections[i] = NewChunkSection()
		c.Biomes[i] = NewBiomeSection()
	}
	return c
}

func (c *ChunkColumn) sectionOf(y int32) (index int, local int, ok bool) {
	rel := y - c.MinY
	index = int(rel >> 4)
	if index < 0 || index >= c.NumSections {
		return 0, 0, false
	}
	return index, int(rel) & 15, true
}

// GetBlockState returns the block state id at world coordinates
// (x, y, z), or 0 (air) if y falls outside the column's sections.
func (c *ChunkColumn) GetBlockState(x int, y int32, z int) int32 {
	idx, localY, ok := c.sectionOf(y)
	if !ok {
		return 0
	}
	return c.Sections[idx].GetBlockState(x&15, localY, z&15)
}

// SetBlockState stores the block state id at world coordinates. Out-of-range
// y is a no-op.
func (c *ChunkColumn) SetBlockState(x int, y int32, z int, state int32) {
	idx, localY, ok := c.sectionOf(y)
	if !ok {
		return
	}
	c.Sections[idx].SetBlockState(x&15, localY, z&15, state)
}

// GetBiome returns the biome id at world coordinates scaled down by 4 (x, y,
// z already expressed in biome-cell units), or 0 if out of range.
func (c *ChunkColumn) GetBiome(x int, y int32, z int) int32 {
	idx, localY, ok := c.sectionOf(y * 4)
	if !ok {
		return 0
	}
	return c.Biomes[idx].GetBiome(x&3, localY/4, z&3)
}

// SetBiome stores the biome id at biome-scale world coordinates.
func (c *ChunkColumn) SetBiome(x int, y int32, z int, biome int32) {
	idx, localY, ok := c.sectionOf(y * 4)
	if !ok {
		return
	}
	c.Biomes[idx].SetBiome(x&3, localY/4, z&3, biome)
}

// lightSlot converts a world y coordinate to the wider light-slot numbering,
// where slot 0 is the sheet below the lowest section and slot NumSections+1
// is the sheet above the highest.
func (c *ChunkColumn) lightSlot(y int32) int {
	return int((y-c.MinY)>>4) + 1
}

// GetBlockLight returns the 4-bit block light value at world coordinates, or
// 0 if the slot has no light data.
func (c *ChunkColumn) GetBlockLight(x int, y int32, z int) byte {
	return getNibble(c.BlockLight, c.lightSlot(y), x&15, int(y-c.MinY)&15, z&15)
}

// SetBlockLight stores a 4-bit block light value, allocating the slot (and
// setting its presence bit) if it doesn't exist and the value is non-zero.
func (c *ChunkColumn) SetBlockLight(x int, y int32, z int, value byte) {
	slot := c.lightSlot(y)
	c.BlockLight, c.blockLightSet = setNibble(c.BlockLight, c.blockLightSet, slot, x&15, int(y-c.MinY)&15, z&15, value)
}

// GetSkyLight / SetSkyLight mirror GetBlockLight / SetBlockLight for sky
// light.
func (c *ChunkColumn) GetSkyLight(x int, y int32, z int) byte {
	return getNibble(c.SkyLight, c.lightSlot(y), x&15, int(y-c.MinY)&15, z&15)
}

func (c *ChunkColumn) SetSkyLight(x int, y int32, z int, value byte) {
	slot := c.lightSlot(y)
	c.SkyLight, c.skyLightSet = setNibble(c.SkyLight, c.skyLightSet, slot, x&15, int(y-c.MinY)&15, z&15, value)
}

func getNibble(slots [][]byte, slot, x, y, z int) byte {
	if slot < 0 || slot >= len(slots) || slots[slot] == nil {
		return 0
	}
	idx := (y*16+z)*16 + x
	b := slots[slot][idx/2]
	if idx%2 == 0 {
		return b & 0x0f
	}
	return b >> 4
}

func setNibble(slots [][]byte, set []bool, slot, x, y, z int, value byte) ([][]byte, []bool) {
	if slot < 0 || slot >= len(slots) {
		return slots, set
	}
	if slots[slot] == nil {
		if value == 0 {
			return slots, set
		}
		slots[slot] = make([]byte, 2048)
		set[slot] = true
	}
	idx := (y*16+z)*16 + x
	if idx%2 == 0 {
		slots[slot][idx/2] = (slots[slot][idx/2] &^ 0x0f) | (value & 0x0f)
	} else {
		slots[slot][idx/2] = (slots[slot][idx/2] &^ 0xf0) | (value << 4)
	}
	return slots, set
}

// BlockEntityKey renders the opaque chunk-local coordinate key used to
// index BlockEntities: packed section-local (x, z) and absolute y.
func BlockEntityKey(x int, y int32, z int) string {
	return fmt.Sprintf("%d,%d,%d", x&15, y, z&15)
}

// Encode writes the network form: each section (count + block states +
// biomes) in ascending order.
func (c *ChunkColumn) Encode(w io.Writer) error {
	for i := 0; i < c.NumSections; i++ {
		if err := c.Sections[i].Encode(w); err != nil {
			return fmt.Errorf("chunk: encode section %d: %w", i, err)
		}
		if err := c.Biomes[i].Encode(w); err != nil {
			return fmt.Errorf("chunk: encode biome section %d: %w", i, err)
		}
	}
	return nil
}

// DecodeChunkColumn reads numSections worth of (section, biome) pairs from
// r into a fresh column at (x, z, minY).
func DecodeChunkColumn(r io.Reader, x, z, minY int32, numSections int) (*ChunkColumn, error) {
	c := NewChunkColumn(x, z, minY, numSections)
	for i := 0; i < numSections; i++ {
		section, err := DecodeChunkSection(r)
		if err != nil {
			return nil, fmt.Errorf("chunk: decode section %d: %w", i, err)
		}
		biomes, err := DecodeBiomeSection(r)
		if err != nil {
			return nil, fmt.Errorf("chunk: decode biome section %d: %w", i, err)
		}
		c.Sections[i] = section
		c.Biomes[i] = biomes
	}
	return c, nil
}

// maskWords renders a presence []bool as the NBT-style long-array bitset
// the light wire form carries its masks in.
func maskWords(set []bool) []uint64 {
	words := make([]uint64, (len(set)+63)/64)
	for i, s := range set {
		if s {
			words[i/64] |= 1 << uint(i%64)
		}
	}
	return words
}

func encodeLongArrayBitSet(w io.Writer, words []uint64) error {
	if err := varint.WriteVarInt(byteWriter{w}, int32(len(words))); err != nil {
		return err
	}
	var buf [8]byte
	for _, v := range words {
		buf[0] = byte(v >> 56)
		buf[1] = byte(v >> 48)
		buf[2] = byte(v >> 40)
		buf[3] = byte(v >> 32)
		buf[4] = byte(v >> 24)
		buf[5] = byte(v >> 16)
		buf[6] = byte(v >> 8)
		buf[7] = byte(v)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// encodeLightArrays writes the length-prefixed 2048-byte nibble array for
// every set slot, in slot order.
func encodeLightArrays(w io.Writer, slots [][]byte, set []bool) error {
	for i, data := range slots {
		if !set[i] {
			continue
		}
		if err := varint.WriteVarInt(byteWriter{w}, int32(len(data))); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// EncodeLightData writes the trailing light section of a Chunk Data and
// Update Light packet body (sky-light mask, block-light mask, empty masks,
// then the sky and block light arrays in slot order), the exact inverse of
// ApplyLightData.
func (c *ChunkColumn) EncodeLightData(w io.Writer) error {
	if err := encodeLongArrayBitSet(w, maskWords(c.skyLightSet)); err != nil {
		return fmt.Errorf("chunk: write sky light mask: %w", err)
	}
	if err := encodeLongArrayBitSet(w, maskWords(c.blockLightSet)); err != nil {
		return fmt.Errorf("chunk: write block light mask: %w", err)
	}
	if err := encodeLongArrayBitSet(w, maskWords(c.skyLightEmpty)); err != nil {
		return fmt.Errorf("chunk: write empty sky light mask: %w", err)
	}
	if err := encodeLongArrayBitSet(w, maskWords(c.blockLightEmpty)); err != nil {
		return fmt.Errorf("chunk: write empty block light mask: %w", err)
	}
	if err := encodeLightArrays(w, c.SkyLight, c.skyLightSet); err != nil {
		return fmt.Errorf("chunk: write sky light arrays: %w", err)
	}
	if err := encodeLightArrays(w, c.BlockLight, c.blockLightSet); err != nil {
		return fmt.Errorf("chunk: write block light arrays: %w", err)
	}
	return nil
}
